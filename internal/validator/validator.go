// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category_kind", validateCategoryKind)
		_ = v.RegisterValidation("log_date", validateLogDate)
	}
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "asset":
		return true
	}
	return false
}

// validateLogDate accepts calendar days in YYYY-MM-DD form.
func validateLogDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}
