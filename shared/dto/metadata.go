package dto

import (
	"hotelops/shared/constant"
	"hotelops/shared/model"
	"hotelops/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	if model.CreatedAt.IsZero() {
		return
	}

	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}
