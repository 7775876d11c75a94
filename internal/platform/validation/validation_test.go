package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	PetID  int64    `json:"petId" validate:"required,gt=0"`
	Size   string   `json:"size" validate:"omitempty,oneof=small medium large"`
	Images []string `json:"images" validate:"omitempty,min=1,dive,url"`
}

func TestStruct_OK(t *testing.T) {
	require.NoError(t, Struct(sample{PetID: 1, Size: "small"}))
}

func TestStruct_MessagesUseJSONNames(t *testing.T) {
	err := Struct(sample{Size: "huge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "petId is required")
	assert.Contains(t, err.Error(), "size must be one of [small medium large]")
}

func TestVar_Email(t *testing.T) {
	require.NoError(t, Var("email", "ana@example.com", "email"))

	for _, bad := range []string{"ana@", "@example.com", "a@b@c", "ana example.com"} {
		err := Var("email", bad, "email")
		require.Error(t, err, bad)
		assert.Equal(t, "email must be a valid email", err.Error())
	}
}
