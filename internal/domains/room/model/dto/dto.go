package dto

import (
	"hotelops/internal/domains/room/model"
	"hotelops/shared"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RoomResponse struct {
	ID         string   `json:"id"`
	PropertyID string   `json:"property_id"`
	RoomNumber string   `json:"room_number"`
	Type       string   `json:"type"`
	Capacity   int      `json:"capacity"`
	Rate       float64  `json:"rate"`
	Status     string   `json:"status"`
	Amenities  []string `json:"amenities"`
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.PropertyID = m.PropertyID
	r.RoomNumber = m.RoomNumber
	r.Type = m.Type
	r.Capacity = m.Capacity
	r.Rate = m.Rate
	r.Status = string(m.Status)

	r.Amenities = []string{}
	if len(m.Amenities) > 0 {
		r.Amenities = append(r.Amenities, m.Amenities...)
	}
}

type GetRoomsResponse struct {
	Rooms   []RoomResponse `json:"rooms"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.Rooms = make([]RoomResponse, len(models))
	for i, m := range models {
		r.Rooms[i].FromModel(m)
	}
}

type CreateRoomRequest struct {
	RoomNumber string       `json:"room_number" validate:"required,max=20"`
	Type       string       `json:"type"        validate:"required,max=50"`
	Capacity   int          `json:"capacity"    validate:"required,min=1"`
	Rate       float64      `json:"rate"        validate:"min=0"`
	Status     model.Status `json:"status"      validate:"omitempty,enum"`
	Amenities  []string     `json:"amenities"   validate:"omitempty,dive,required,max=50"`
}

// ToModel defaults the status of a new room to available.
func (c *CreateRoomRequest) ToModel(propertyID string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		RoomNumber: strings.TrimSpace(c.RoomNumber),
		Type:       c.Type,
		Capacity:   c.Capacity,
		Rate:       c.Rate,
		Status:     status,
		Amenities:  pq.StringArray(append([]string{}, c.Amenities...)),
	}
}

type UpdateRoomRequest struct {
	RoomNumber string         `db:"room_number" json:"room_number" validate:"omitempty,max=20"`
	Type       string         `db:"type"        json:"type"        validate:"omitempty,max=50"`
	Capacity   int            `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Rate       *float64       `db:"rate"        json:"rate"        validate:"omitempty,min=0"`
	Status     model.Status   `db:"status"      json:"status"      validate:"omitempty,enum"`
	Amenities  pq.StringArray `db:"amenities"   json:"amenities"   validate:"omitempty,dive,required,max=50"`
}

type ListRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *ListRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, m := range models {
		r.Rooms[i].FromModel(m)
	}
}
