package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Rating   int    `validate:"max=5"`
}

func TestValidationMessage(t *testing.T) {
	InitValidator()

	err := Validate.Struct(signup{Username: "al", Email: "nope", Rating: 9})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "username must be at least 3")
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "rating must be at most 5")

	err = Validate.Struct(signup{})
	assert.Contains(t, ValidationMessage(err), "username is required")
}

type credentials struct {
	Password string `validate:"required,max=72,bcryptlen"`
}

func TestBcryptLengthRule(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(credentials{Password: strings.Repeat("a", 72)}))
	assert.NoError(t, Validate.Struct(credentials{Password: strings.Repeat("é", 36)}))

	err := Validate.Struct(credentials{Password: strings.Repeat("é", 40)})
	require.Error(t, err)
	assert.Equal(t, "password must be at most 72 bytes", ValidationMessage(err))
}

func TestValidationMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", ValidationMessage(errors.New("boom")))
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hashed)

	assert.True(t, CheckPassword(hashed, "s3cretpass"))
	assert.False(t, CheckPassword(hashed, "wrong"))
	assert.False(t, CheckPasswordAgainstDummy("recipe-catalog-dummy-password"))
}
