package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// structValidator adapts go-playground/validator to echo's Validator interface
// so handlers can call c.Validate on bound request structs.
type structValidator struct {
	validate *validator.Validate
}

func newValidator() *structValidator {
	return &structValidator{validate: validator.New()}
}

func (v *structValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
