package model

import "time"

// Metadata holds the audit columns shared by append-only records.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
