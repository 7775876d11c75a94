// Package seed carga los datos de demo: un refugio y tres mascotas.
package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
)

const ShelterName = "Hills Animal Rescue"

type Result struct {
	Created   bool // true si esta corrida creó algo
	ShelterID int64
	PetIDs    []int64
}

// mu serializa corridas del mismo proceso; entre réplicas manda el índice
// único de shelters.
var mu sync.Mutex

// Run es idempotente y completa lo que falte: si una corrida anterior
// creó el refugio pero no todas las mascotas, ésta agrega las faltantes.
func Run(ctx context.Context, shelterSvc *shelters.Service, petSvc *pets.Service) (Result, error) {
	mu.Lock()
	defer mu.Unlock()

	shelter, created, err := ensureShelter(ctx, shelterSvc)
	if err != nil {
		return Result{}, err
	}

	res := Result{Created: created, ShelterID: shelter.ID}
	for _, in := range demoPets(shelter.ID) {
		p, err := petSvc.FindByName(ctx, shelter.ID, in.Name)
		switch {
		case err == nil:
		case errors.Is(err, pets.ErrNotFound):
			if p, err = petSvc.Create(ctx, in); err != nil {
				return res, fmt.Errorf("create pet %s: %w", in.Name, err)
			}
			res.Created = true
		default:
			return res, fmt.Errorf("find pet %s: %w", in.Name, err)
		}
		res.PetIDs = append(res.PetIDs, p.ID)
	}
	return res, nil
}

func ensureShelter(ctx context.Context, svc *shelters.Service) (shelters.Shelter, bool, error) {
	s, err := svc.GetByName(ctx, ShelterName)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, shelters.ErrNotFound) {
		return shelters.Shelter{}, false, fmt.Errorf("find shelter: %w", err)
	}

	rating := 4.8
	s, err = svc.Create(ctx, shelters.CreateInput{
		Name:        ShelterName,
		Location:    "Hills District, NSW",
		Address:     "123 Pet Street, Hills NSW 2154",
		Phone:       "+61 2 9876 5432",
		Email:       "contact@hillsanimalrescue.org.au",
		Rating:      &rating,
		ReviewCount: 156,
	})
	switch {
	case err == nil:
		return s, true, nil
	case errors.Is(err, shelters.ErrConflict):
		// otra réplica lo creó entre el GetByName y el Create
		s, err = svc.GetByName(ctx, ShelterName)
		if err != nil {
			return shelters.Shelter{}, false, fmt.Errorf("find shelter: %w", err)
		}
		return s, false, nil
	default:
		return shelters.Shelter{}, false, fmt.Errorf("create shelter: %w", err)
	}
}

// demoPets en orden de alta: Buddy, Luna, Max.
func demoPets(shelterID int64) []pets.CreateInput {
	return []pets.CreateInput{
		{
			Name:            "Buddy",
			Species:         "dog",
			Breed:           "Golden Retriever",
			Age:             "3 years",
			Weight:          "28 kg",
			Gender:          "male",
			Size:            "large",
			Color:           "golden",
			Description:     "Buddy is a friendly and energetic Golden Retriever who loves playing fetch and swimming. He's great with kids and other dogs!",
			Characteristics: []string{"Friendly", "Energetic", "Good with kids", "Loves water"},
			Images:          []string{"https://images.unsplash.com/photo-1552053831-71594a27632d?w=400&h=400&fit=crop"},
			ShelterID:       shelterID,
		},
		{
			Name:            "Luna",
			Species:         "cat",
			Breed:           "Domestic Shorthair",
			Age:             "2 years",
			Weight:          "4 kg",
			Gender:          "female",
			Size:            "medium",
			Color:           "calico",
			Description:     "Luna is a sweet and gentle cat who loves to cuddle. She's looking for a quiet home where she can be the center of attention.",
			Characteristics: []string{"Gentle", "Affectionate", "Indoor cat", "Quiet"},
			Images:          []string{"https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?w=400&h=400&fit=crop"},
			ShelterID:       shelterID,
		},
		{
			Name:            "Max",
			Species:         "dog",
			Breed:           "Border Collie",
			Age:             "1 year",
			Weight:          "18 kg",
			Gender:          "male",
			Size:            "medium",
			Color:           "black and white",
			Description:     "Max is a smart and active Border Collie puppy. He needs an active family who can keep up with his energy and intelligence.",
			Characteristics: []string{"Intelligent", "Active", "Trainable", "Needs exercise"},
			Images:          []string{"https://images.unsplash.com/photo-1551717743-49959800b1f6?w=400&h=400&fit=crop"},
			ShelterID:       shelterID,
		},
	}
}
