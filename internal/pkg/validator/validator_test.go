package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/structure-inspection/internal/pkg/errors"
	"github.com/structure-inspection/internal/pkg/validator"
)

type ratingPayload struct {
	Rating *int   `validate:"omitempty,rating"`
	Name   string `validate:"required"`
}

func ptrInt(v int) *int { return &v }

func TestValidate_Rating(t *testing.T) {
	tests := []struct {
		name    string
		rating  *int
		wantErr bool
	}{
		{"nil rating is allowed", nil, false},
		{"lower bound", ptrInt(1), false},
		{"upper bound", ptrInt(5), false},
		{"zero", ptrInt(0), true},
		{"six", ptrInt(6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(ratingPayload{Rating: tt.rating, Name: "beams"})
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_DetailsListFields(t *testing.T) {
	err := validator.Validate(ratingPayload{Rating: ptrInt(9)})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)

	fields, ok := appErr.Details["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "rating", fields["Rating"])
	assert.Equal(t, "required", fields["Name"])

	// сентинел не должен меняться
	assert.Nil(t, apperrors.ErrValidation.Details)
}
