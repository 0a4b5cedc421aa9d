// Package validator registers domain validation rules on the binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Universal numbering: permanent teeth 1-32, primary teeth A-T.
var toothPattern = regexp.MustCompile(`^([1-9]|[12][0-9]|3[0-2]|[A-T])$`)

func tooth(fl validator.FieldLevel) bool {
	return toothPattern.MatchString(fl.Field().String())
}

// RegisterValidations installs the custom rules used by request binding tags.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("tooth", tooth)
}

// ValidTooth reports whether the identifier names a chartable tooth.
func ValidTooth(id string) bool {
	return toothPattern.MatchString(id)
}
