package user

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest binds the registration form.
type RegisterRequest struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password1" json:"password"`
	PasswordConfirm string `form:"password2" json:"password_confirm"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("This field is required."),
			validation.RuneLength(1, 150).Error("Ensure this value has at most 150 characters."),
			validation.Match(usernamePattern).Error("Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."),
		),
		validation.Field(&r.Email,
			validation.RuneLength(0, 254),
			is.Email.Error("Enter a valid email address."),
		),
		validation.Field(&r.Password,
			validation.Required.Error("This field is required."),
			validation.RuneLength(8, 128).Error("This password is too short. It must contain at least 8 characters."),
			validation.By(notEntirelyNumeric),
			validation.By(notSimilarTo(r.Username)),
		),
		validation.Field(&r.PasswordConfirm,
			validation.Required.Error("This field is required."),
			validation.By(matches(r.Password)),
		),
	)
}

func notEntirelyNumeric(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	for _, ch := range s {
		if !unicode.IsDigit(ch) {
			return nil
		}
	}
	return errors.New("This password is entirely numeric.")
}

func notSimilarTo(username string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if username == "" || s == "" {
			return nil
		}
		if strings.Contains(strings.ToLower(s), strings.ToLower(username)) {
			return errors.New("The password is too similar to the username.")
		}
		return nil
	}
}

func matches(password string) validation.RuleFunc {
	return func(value interface{}) error {
		if s, _ := value.(string); s != password {
			return errors.New("The two password fields didn't match.")
		}
		return nil
	}
}

// LoginRequest binds the login form and the API token request.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("This field is required.")),
		validation.Field(&r.Password, validation.Required.Error("This field is required.")),
	)
}

// TokenResponse - JWT for API clients
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}
