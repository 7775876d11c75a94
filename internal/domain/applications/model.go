package applications

import (
	"time"

	"pet-adoption/internal/domain/pets"
)

// Status del ciclo de revisión.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal: approved y rejected no vuelven a pending.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Application es una solicitud de adopción de un usuario sobre un pet.
type Application struct {
	ID     int64
	UserID string
	PetID  int64
	Status Status

	Message string
	// Blobs opacos: el frontend decide las claves (phone, address, hasYard...).
	ContactInfo    map[string]any
	ExperienceInfo map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

type WithPet struct {
	Application
	Pet pets.Pet
}

// SubmittedEvent se publica al crear una solicitud.
type SubmittedEvent struct {
	ApplicationID int64     `json:"applicationId"`
	UserID        string    `json:"userId"`
	PetID         int64     `json:"petId"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// ReviewDecision es lo que manda el revisor externo.
type ReviewDecision struct {
	ApplicationID int64  `json:"applicationId"`
	Status        string `json:"status"`
}
