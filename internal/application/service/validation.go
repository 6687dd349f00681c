package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("regime", func(fl validator.FieldLevel) bool {
		return entity.TaxRegime(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		return entity.Frequency(fl.Field().String()).Valid()
	})
	return v
}

// validateStruct runs the struct tags and folds failures into ErrInvalidInput
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}
