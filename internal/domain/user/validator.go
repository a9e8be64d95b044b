package user

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const MinPasswordLen = 6

type Validator interface {
	ValidateRegister(email, password string) error
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type CredentialsValidator struct {
	validate *validator.Validate
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{validate: validator.New()}
}

// ValidateRegister checks the address format and the password length.
// Failures are *ValidationError.
func (v *CredentialsValidator) ValidateRegister(email, password string) error {
	err := v.validate.Struct(credentials{Email: email, Password: password})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate credentials: %w", err)
	}

	return &ValidationError{
		Code:    fieldErrs[0].Field() + "." + fieldErrs[0].Tag(),
		Message: message(fieldErrs[0]),
	}
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return "Unable to validate email address: invalid format"
	case "Password":
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return fmt.Sprintf("Password should be at least %d characters.", MinPasswordLen)
	default:
		return fe.Error()
	}
}
