package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/go-playground/validator/v10"
)

var (
	structValidator *validator.Validate
	once            sync.Once
)

func engine() *validator.Validate {
	once.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		// report json names so clients can map errors back to their payload
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}

// Struct checks the `validate` tags of a request DTO and converts failures to
// the field-level AppError used by every handler.
func Struct(dto interface{}) *errors.AppError {
	err := engine().Struct(dto)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	fieldErrors := make([]errors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
			Code:    string(tagCode(fe.Tag())),
		})
	}

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: fieldErrors})
}

func tagCode(tag string) errors.ErrorCode {
	switch tag {
	case "oneof":
		return errors.ErrCodeInvalidEnum
	case "datetime":
		return errors.ErrCodeInvalidDate
	case "uuid", "uuid4":
		return errors.ErrCodeInvalidID
	default:
		return errors.ErrCodeValidationFailed
	}
}

func tagMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "datetime":
		return fmt.Sprintf("%s must use the %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Merge folds several validation results into one.
func Merge(errs ...*errors.AppError) *errors.AppError {
	var fields []errors.ValidationError
	for _, e := range errs {
		if e == nil {
			continue
		}
		if details, ok := e.Details.(errors.ValidationErrors); ok {
			fields = append(fields, details.Errors...)
			continue
		}
		fields = append(fields, errors.ValidationError{Message: e.Message, Code: string(e.Code)})
	}
	if len(fields) == 0 {
		return nil
	}
	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: fields})
}
