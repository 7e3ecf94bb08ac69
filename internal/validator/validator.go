// Package validator provides the custom validation rules shared by Gin's
// binding engine (binding:"..." tags on request structs) and the service
// layer (validate:"..." tags on models).
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

var (
	// MaxMoney is the first value that no longer fits decimal(12,2).
	MaxMoney = decimal.New(1, 10)
	// maxRate is the first value that no longer fits decimal(5,2).
	maxRate = decimal.New(1, 3)

	modelValidator *validator.Validate
	initOnce       sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("rate", validateRate)
	_ = v.RegisterValidation("frequency", validateFrequency)
	_ = v.RegisterValidation("investment_term", validateInvestmentTerm)
	_ = v.RegisterValidation("tip_category", validateTipCategory)
	_ = v.RegisterValidation("role", validateRole)
}

func get() *validator.Validate {
	initOnce.Do(func() {
		modelValidator = validator.New(validator.WithRequiredStructEnabled())
		register(modelValidator)
	})
	return modelValidator
}

// Struct validates a model using its validate tags. A failure is returned as
// an INVALID_INPUT AppError naming the first offending field.
func Struct(v any) error {
	if err := get().Struct(v); err != nil {
		return ToAppError(err)
	}
	return nil
}

// Var validates a single value against a tag such as "email" or "money".
func Var(field string, value any, tag string) error {
	if err := get().Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperrors.WithField(apperrors.ErrInvalidInput, field, describe(field, verrs[0]))
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ToAppError converts a validation or binding error into an INVALID_INPUT
// AppError. Errors that did not come from the validator keep their text.
func ToAppError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		return apperrors.WithField(apperrors.ErrInvalidInput, field, describe(field, verrs[0]))
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "money":
		return fmt.Sprintf("%s must be a non-negative amount with at most 10 integer and 2 decimal digits", field)
	case "rate":
		return fmt.Sprintf("%s must be between -999.99 and 999.99 with at most 2 decimal digits", field)
	case "frequency":
		return fmt.Sprintf("%s must be one of daily, weekly, monthly, yearly", field)
	case "investment_term":
		return fmt.Sprintf("%s must be one of year, two_years, three_years", field)
	case "tip_category":
		return fmt.Sprintf("%s must be one of Investment, Savings, Debt_reduction, Credit", field)
	case "role":
		return fmt.Sprintf("%s must be admin or user", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
}

// decimalValue exposes decimal.Decimal fields to tag validators as their
// canonical string form.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, d.Equal(d.Round(2))
}

func validateMoney(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative() && d.LessThan(MaxMoney)
}

func validateRate(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.Abs().LessThan(maxRate)
}

func validateFrequency(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).IsValid()
}

func validateInvestmentTerm(fl validator.FieldLevel) bool {
	return models.InvestmentTerm(fl.Field().String()).IsValid()
}

func validateTipCategory(fl validator.FieldLevel) bool {
	return models.TipCategory(fl.Field().String()).IsValid()
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).IsValid()
}
