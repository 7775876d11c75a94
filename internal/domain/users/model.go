package users

import "time"

// User se identifica por el subject del proveedor de identidad (opaco).
type User struct {
	ID              string
	Email           string // único si no está vacío
	FirstName       string
	LastName        string
	ProfileImageURL string
	Location        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
