package model

const (
	GuestTableName  = "guests"
	GuestEntityName = "guest"

	FieldGuestName = "name"
)

type Guest struct {
	ID          string `db:"id"          json:"id"`
	Name        string `db:"name"        json:"name"`
	Email       string `db:"email"       json:"email"`
	Phone       string `db:"phone"       json:"phone"`
	IDType      string `db:"id_type"     json:"id_type"`
	IDNumber    string `db:"id_number"   json:"id_number"`
	Nationality string `db:"nationality" json:"nationality"`
	Address     string `db:"address"     json:"address"`
}
