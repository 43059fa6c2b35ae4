package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"goflare.io/billing/models/enum"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator panics if a custom tag cannot be registered.
func NewValidator() *Validator {
	validate := validator.New()
	if err := validate.RegisterValidation("setup_intent_status", func(fl validator.FieldLevel) bool {
		return enum.SetupIntentStatus(fl.Field().String()).IsValid()
	}); err != nil {
		panic(fmt.Sprintf("handlers: failed to register setup_intent_status validation: %v", err))
	}
	return &Validator{validate: validate}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
