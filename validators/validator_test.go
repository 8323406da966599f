package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username string `form:"username" validate:"required,max=5"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	ImageURL string `form:"image_url" validate:"omitempty,uri"`
}

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(signupForm{Username: "toolong", Email: "nope", Password: "123", ImageURL: "not a url"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, map[string]string{
		"username":  "Field cannot be longer than 5 characters.",
		"email":     "Invalid email address.",
		"password":  "Field must be at least 6 characters long.",
		"image_url": "Invalid URL.",
	}, fields)
}

func TestFieldErrorsValid(t *testing.T) {
	v := NewValidator()

	err := v.Validate(signupForm{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Nil(t, FieldErrors(err))
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestImageURLAcceptsPaths(t *testing.T) {
	v := NewValidator()

	for _, u := range []string{"/static/images/default-pic.png", "https://example.com/me.jpg"} {
		assert.NoError(t, v.Validate(signupForm{Username: "alice", Email: "alice@example.com", Password: "secret1", ImageURL: u}), u)
	}
}
