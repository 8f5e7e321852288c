package user

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cure-Passw0rd",
		PasswordConfirm: "s3cure-Passw0rd",
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestRegisterRequestValid(t *testing.T) {
	assert.NoError(t, validRegister().Validate())

	noEmail := validRegister()
	noEmail.Email = ""
	assert.NoError(t, noEmail.Validate())
}

func TestRegisterRequestRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, "username"},
		{"bad username chars", func(r *RegisterRequest) { r.Username = "al ice!" }, "username"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *RegisterRequest) { r.Password, r.PasswordConfirm = "abc12", "abc12" }, "password"},
		{"numeric password", func(r *RegisterRequest) { r.Password, r.PasswordConfirm = "1234567890", "1234567890" }, "password"},
		{"similar to username", func(r *RegisterRequest) { r.Password, r.PasswordConfirm = "xxALICExx99", "xxALICExx99" }, "password"},
		{"mismatch", func(r *RegisterRequest) { r.PasswordConfirm = "something-else" }, "password_confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			errs := fieldErrors(t, req.Validate())
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestRegisterMismatchMessage(t *testing.T) {
	req := validRegister()
	req.PasswordConfirm = "different-pass-1"
	errs := fieldErrors(t, req.Validate())
	assert.Equal(t, "The two password fields didn't match.", errs["password_confirm"].Error())
}

func TestLoginRequestRequiresBoth(t *testing.T) {
	errs := fieldErrors(t, LoginRequest{}.Validate())
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
	assert.NoError(t, LoginRequest{Username: "a", Password: "b"}.Validate())
}
