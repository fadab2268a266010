package model

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID   = "id"
	FieldName = "name"
)

type Property struct {
	ID         string `db:"id"          json:"id"`
	Name       string `db:"name"        json:"name"`
	Location   string `db:"location"    json:"location"`
	Address    string `db:"address"     json:"address"`
	Phone      string `db:"phone"       json:"phone"`
	Email      string `db:"email"       json:"email"`
	RoomsCount int    `db:"rooms_count" json:"rooms_count"`
}
