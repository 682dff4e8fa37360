package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		assert.Equal(t, "validation failed: email: is required", errs.Error())
	})

	t.Run("keeps field order", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "nama", Message: "a"})
		errs.Add(validator.ValidationError{Field: "email", Message: "b"})
		assert.Equal(t, "validation failed: nama: a; email: b", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "email", Rule: validator.KindEmail, Message: "invalid"})
	errs.Add(validator.ValidationError{Field: "password", Rule: validator.KindMinLength, Message: "too short"})

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("nama"))
	assert.Equal(t, "too short", errs.Message("password"))
	assert.Empty(t, errs.Message("nama"))
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
	assert.Equal(t, map[string]string{"email": "invalid", "password": "too short"}, errs.Map())

	got, ok := errs.Get("email")
	require.True(t, ok)
	assert.Equal(t, validator.KindEmail, got.Rule)
}

func TestValidationErrors_MapKeepsFirstMessage(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "email", Message: "first"},
		{Field: "email", Message: "second"},
	}
	assert.Equal(t, map[string]string{"email": "first"}, errs.Map())
	assert.Equal(t, []string{"email"}, errs.Fields())
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{{Field: "nama", Message: "Nama wajib diisi"}}
	assert.True(t, validator.IsValidationError(fmt.Errorf("register: %w", errs)))
	assert.False(t, validator.IsValidationError(nil))
	assert.False(t, validator.IsValidationError(errors.New("boom")))
}
