package dto

import (
	"hotelops/internal/domains/user/model"
	"hotelops/shared"
	"strings"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	PropertyID string `json:"property_id,omitempty"`
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Email = m.Email
	r.Name = m.Name
	r.Role = string(m.Role)

	if m.PropertyID != nil {
		r.PropertyID = *m.PropertyID
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}

type CreateUserRequest struct {
	Email      string     `json:"email"       validate:"required,email,max=255"`
	Password   string     `json:"password"    validate:"required,min=8,max=72"`
	Name       string     `json:"name"        validate:"required,max=255"`
	Role       model.Role `json:"role"        validate:"required,enum"`
	PropertyID *string    `json:"property_id" validate:"omitempty,uuid"`
}

// ToModel builds the credential and the profile of a new operator. Emails are
// stored lowercase.
func (c *CreateUserRequest) ToModel(passwordHash string) (model.Credential, model.User) {
	email := strings.ToLower(strings.TrimSpace(c.Email))

	credential := model.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	user := model.User{
		ID:     uuid.NewString(),
		AuthID: credential.ID,
		Email:  email,
		Name:   strings.TrimSpace(c.Name),
		Role:   c.Role,
	}

	if c.PropertyID != nil && *c.PropertyID != "" {
		propertyID := *c.PropertyID
		user.PropertyID = &propertyID
	}

	return credential, user
}

// UpdateUserRequest patches a profile. ClearProperty unbinds the operator from
// its property.
type UpdateUserRequest struct {
	Name          string     `db:"name"        json:"name"           validate:"omitempty,max=255"`
	Role          model.Role `db:"role"        json:"role"           validate:"omitempty,enum"`
	PropertyID    *string    `db:"property_id" json:"property_id"    validate:"omitempty,uuid"`
	ClearProperty bool       `db:"-"           json:"clear_property" validate:"excluded_with=PropertyID"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}
