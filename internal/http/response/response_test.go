package response

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	got := Error("Invalid credentials")
	assert.Equal(t, ErrorResponse{Status: "Error", Message: "Invalid credentials"}, got)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
		Name     string `validate:"max=3"`
		Code     string `validate:"alphanum"`
	}

	tests := []struct {
		name     string
		in       req
		contains []string
	}{
		{
			name:     "required",
			in:       req{Code: "a1"},
			contains: []string{"field Email is a required field", "field Password is a required field"},
		},
		{
			name:     "email and min",
			in:       req{Email: "nope", Password: "123", Code: "a1"},
			contains: []string{"field Email must be a valid email", "field Password must be at least 6 characters"},
		},
		{
			name:     "max and alphanum",
			in:       req{Email: "a@x.com", Password: "secret1", Name: "toolong", Code: "a-1"},
			contains: []string{"field Name must be at most 3 characters", "field Code can contain only numbers and letters"},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))

			got := ValidationError(verrs)
			assert.Equal(t, StatusError, got.Status)
			for _, c := range tt.contains {
				assert.Contains(t, got.Message, c)
			}
		})
	}
}

func TestNewValidator_MaxBytes(t *testing.T) {
	type req struct {
		Password string `validate:"max=72,maxbytes=72"`
	}
	v := NewValidator()

	require.NoError(t, v.Struct(req{Password: strings.Repeat("a", 72)}))
	require.NoError(t, v.Struct(req{Password: strings.Repeat("п", 36)}))

	err := v.Struct(req{Password: strings.Repeat("п", 40)})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "field Password must be at most 72 bytes", ValidationError(verrs).Message)
}
