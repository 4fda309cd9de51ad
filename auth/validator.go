package auth

import (
	"event-market/domain"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// RegisterRequest is the sign-up form of any account kind.
type RegisterRequest struct {
	Name     string             `validate:"required,max=120"`
	Email    string             `validate:"required,email"`
	Password string             `validate:"required,min=6,max=72"`
	Location string             `validate:"max=200"`
	Phone    string             `validate:"omitempty,max=20,phone"`
	Kind     domain.AccountKind `validate:"required,kind"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAccountKind(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return isPhone(fl.Field().String())
	})
	return v
}

// Normalize trims every field so that validation and storage see the same
// values.
func (r RegisterRequest) Normalize() RegisterRequest {
	return RegisterRequest{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: r.Password,
		Location: strings.TrimSpace(r.Location),
		Phone:    strings.TrimSpace(r.Phone),
		Kind:     r.Kind,
	}
}

func ValidateRegister(req RegisterRequest) error {
	return validate.Struct(req)
}

func ValidateCredentials(c Credentials) error {
	return validate.Struct(c)
}

// isPhone accepts digits with an optional leading plus and the usual
// separators.
func isPhone(s string) bool {
	digits := 0
	for i, char := range s {
		switch {
		case char >= '0' && char <= '9':
			digits++
		case char == '+' && i == 0:
		case char == ' ' || char == '-' || char == '(' || char == ')':
		default:
			return false
		}
	}
	return digits >= 6
}
