package dto

import "hotelops/internal/domains/property/model"

type SetCurrentPropertyRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
}

type PropertyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	RoomsCount int    `json:"rooms_count"`
	Current    bool   `json:"current"`
}

func (r *PropertyResponse) FromModel(m model.Property, currentID string) {
	r.ID = m.ID
	r.Name = m.Name
	r.Location = m.Location
	r.Address = m.Address
	r.Phone = m.Phone
	r.Email = m.Email
	r.RoomsCount = m.RoomsCount
	r.Current = m.ID != "" && m.ID == currentID
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	CurrentID  string             `json:"current_property_id,omitempty"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, current *model.Property) {
	if current != nil {
		r.CurrentID = current.ID
	}

	r.Properties = make([]PropertyResponse, len(models))
	for i, m := range models {
		r.Properties[i].FromModel(m, r.CurrentID)
	}
}
