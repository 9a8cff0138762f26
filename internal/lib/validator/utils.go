package validator

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

func getFieldName(obj any, origFieldName string) (fieldName string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			fieldName = jsonName
		}
	} else {
		fieldName = utils.CamelToSnake(origFieldName)
	}
	return
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gt":
			errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
		case "email":
			errorMsg = "Value must be a valid email address"
		case "dive":
			errorMsg = "One of the values is invalid"
		case "releasedate":
			errorMsg = fmt.Sprintf("Release date must not be before %s", models.EarliestReleaseDate.Format(fields.DateLayout))
		case "nowhitespace":
			errorMsg = "Value must not contain whitespace"
		case "pastdate":
			errorMsg = "Date must not be in the future"
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

// ValidateReleaseDate rejects dates before the first public film screening.
func ValidateReleaseDate(fl govalidator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(fields.Date)
	if !ok {
		return false
	}
	return !date.Before(models.EarliestReleaseDate.Time)
}

// ValidateNoWhitespace rejects strings with embedded whitespace.
func ValidateNoWhitespace(fl govalidator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

// ValidatePastDate rejects dates after today.
func ValidatePastDate(fl govalidator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(fields.Date)
	if !ok {
		return false
	}
	return !date.After(time.Now())
}
