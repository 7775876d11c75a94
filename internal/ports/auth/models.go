package auth

import "time"

// Claims es lo mínimo que el resto del sistema necesita de una request autenticada:
// un subject estable del proveedor de identidad y, si vienen, datos de perfil.
type Claims struct {
	UserID          string `json:"sub"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// Session es una sesión de cookie persistida (tabla sessions / redis / memoria).
type Session struct {
	ID        string
	Claims    Claims
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
