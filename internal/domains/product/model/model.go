package model

const (
	TableName  = "products"
	EntityName = "product"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldName       = "name"
	FieldCategory   = "category"
	FieldStock      = "stock"

	// CacheKeyList holds the point-of-sale catalog of a property.
	CacheKeyList = "product:gets"

	// CategoryAll disables the category filter.
	CategoryAll = "all"
)

type Product struct {
	ID         string  `db:"id"          json:"id"`
	PropertyID string  `db:"property_id" json:"property_id"`
	Name       string  `db:"name"        json:"name"`
	Category   string  `db:"category"    json:"category"`
	Price      float64 `db:"price"       json:"price"`
	Cost       float64 `db:"cost"        json:"cost"`
	Stock      int     `db:"stock"       json:"stock"`
	Unit       string  `db:"unit"        json:"unit"`
}
