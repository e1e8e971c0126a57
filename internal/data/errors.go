package data

import (
	"HoopStatApi/internal/validator"
	"errors"
)

var ErrExtractionFailed = errors.New("could not extract schedule, please try a clearer image")

type ModelValidationErr struct {
	Errors map[string]string
}

func (e ModelValidationErr) Error() string {
	return "model validation unsuccessful"
}

// validationErr converts the failures collected by v, or returns nil when v is valid.
func validationErr(v *validator.Validator) error {
	if v.Valid() {
		return nil
	}
	return ModelValidationErr{Errors: v.Errors}
}
