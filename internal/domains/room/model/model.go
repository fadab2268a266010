package model

import "github.com/lib/pq"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldRoomNumber = "room_number"
	FieldType       = "type"
	FieldStatus     = "status"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusCleaning    Status = "cleaning"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusCleaning:
		return true
	default:
		return false
	}
}

// Room is read-only for the calendar and the workspace stores. Managers edit rooms through the room service.
type Room struct {
	ID         string         `db:"id"          json:"id"`
	PropertyID string         `db:"property_id" json:"property_id"`
	RoomNumber string         `db:"room_number" json:"room_number"`
	Type       string         `db:"type"        json:"type"`
	Capacity   int            `db:"capacity"    json:"capacity"`
	Rate       float64        `db:"rate"        json:"rate"`
	Status     Status         `db:"status"      json:"status"`
	Amenities  pq.StringArray `db:"amenities"   json:"amenities"`
}
