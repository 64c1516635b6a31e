package handler

import (
	"errors"
	"fmt"

	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/go-playground/validator/v10"
)

// bindError maps a gin binding failure to the validation sentinel so the
// error handler renders it as a client error. Validator field errors pass
// through untouched to keep their per-field details.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return fmt.Errorf("%w: %v", ierr.ErrValidation, err)
}
