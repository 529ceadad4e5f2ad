package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           string    `db:"id" bson:"_id" json:"id"`
	FirstName    string    `db:"first_name" bson:"firstName" json:"firstName"`
	LastName     string    `db:"last_name" bson:"lastName" json:"lastName"`
	Email        string    `db:"email" bson:"email" json:"email"`
	PasswordHash string    `db:"password_hash" bson:"password" json:"-"`
	Role         Role      `db:"role" bson:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
}

// UserPage is one slice of the user collection plus the totals needed to
// walk the rest of it.
type UserPage struct {
	TotalItems int64  `json:"totalItems"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
	Items      []User `json:"items"`
}
