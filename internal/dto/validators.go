package dto

import (
	"fmt"

	"github.com/SscSPs/hr_memo_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the enum tags used by the request bodies in this package.
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"memo_category": func(fl validator.FieldLevel) bool {
			return domain.MemorandumCategory(fl.Field().String()).IsValid()
		},
		"memo_priority": func(fl validator.FieldLevel) bool {
			return domain.MemorandumPriority(fl.Field().String()).IsValid()
		},
		"memo_action": func(fl validator.FieldLevel) bool {
			return domain.ValidationAction(fl.Field().String()).IsValid()
		},
		"employee_role": func(fl validator.FieldLevel) bool {
			return domain.Role(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
