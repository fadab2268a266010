package model

import "hotelops/shared/constant"

const (
	TableName  = "users"
	EntityName = "user"

	CredentialTableName  = "auth_users"
	CredentialEntityName = "credential"

	FieldID         = "id"
	FieldAuthID     = "auth_id"
	FieldEmail      = "email"
	FieldName       = "name"
	FieldRole       = "role"
	FieldPropertyID = "property_id"

	FieldPasswordHash = "password_hash"
)

type Role string

const (
	RoleAdmin   Role = constant.RoleAdmin
	RoleManager Role = constant.RoleManager
	RoleStaff   Role = constant.RoleStaff
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

// User is the operator profile linked to a gateway identity through AuthID.
type User struct {
	ID         string  `db:"id"          json:"id"`
	AuthID     string  `db:"auth_id"     json:"auth_id"`
	Email      string  `db:"email"       json:"email"`
	Name       string  `db:"name"        json:"name"`
	Role       Role    `db:"role"        json:"role"`
	PropertyID *string `db:"property_id" json:"property_id,omitempty"`
}

// Credential is the sign-in identity the gateway verifies passwords against.
type Credential struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}
