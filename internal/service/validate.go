package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chakrahealing/admin_api/internal/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct tags and folds failures into ErrInvalidInput.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", utils.ErrInvalidInput, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
}
