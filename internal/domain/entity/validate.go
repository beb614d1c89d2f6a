package entity

import (
	"errors"
	"fmt"
	"strings"

	"flight-inventory-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags of v and the decimal ranges of flights.
// Failures wrap domain.ErrInvalidInput.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatFieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	switch f := v.(type) {
	case *Flight:
		return checkPricing(&f.Tax, &f.Discount, &f.BaggageLimitKg)
	case *FlightPatch:
		return checkPricing(f.Tax, f.Discount, f.BaggageLimitKg)
	}
	return nil
}

func checkPricing(tax, discount, baggage *decimal.Decimal) error {
	if tax != nil && (tax.IsNegative() || tax.GreaterThan(hundred)) {
		return fmt.Errorf("%w: tax must be between 0 and 100", domain.ErrInvalidInput)
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(hundred)) {
		return fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidInput)
	}
	if baggage != nil && baggage.IsNegative() {
		return fmt.Errorf("%w: baggage_limit_kg must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " must be at most " + fe.Param() + " characters long"
	case "min":
		return field + " must be at least " + fe.Param() + " characters long"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "oneof":
		return field + " must be one of the following: " + fe.Param()
	case "gtfield":
		return field + " must be after " + fe.Param()
	}
	return field + " is invalid"
}
