package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockhold/pkg/logger"
	"stockhold/pkg/model"
)

var skuRegex = regexp.MustCompile(`^[A-Z0-9]+(-[A-Z0-9]+)*$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("sku", validateSKU); err != nil {
		log.Fatal("Failed to register 'sku' validator", "error", err)
	}

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateSKU(fl validator.FieldLevel) bool {
	sku, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(sku) <= 64 && skuRegex.MatchString(sku)
}

func (v *ReservationValidator) ValidateReserve(req *model.ReserveRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var translated ValidationErrors
	for _, err := range errs {
		translated = append(translated, ValidationError{
			Field:   err.Field(),
			Message: messageFor(err),
		})
	}
	return translated
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "sku":
		return "must be an uppercase alphanumeric SKU like LAPTOP-001"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
