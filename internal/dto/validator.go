package dto

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"trading-journal/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator with the journal rules registered:
//
//	date_only         YYYY-MM-DD calendar date
//	decimal_places=N  at most N digits after the point
//	decimal_abs_lt=X  absolute value strictly below X
func NewValidator() *goValidator.Validate {
	v := goValidator.New()
	mustRegister(v, "date_only", validateDateOnly)
	mustRegister(v, "decimal_places", validateDecimalPlaces)
	mustRegister(v, "decimal_abs_lt", validateDecimalAbsLessThan)
	return v
}

func mustRegister(v *goValidator.Validate, tag string, fn goValidator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func validateDateOnly(fl goValidator.FieldLevel) bool {
	_, err := time.Parse(utils.DateLayout, fl.Field().String())
	return err == nil
}

func validateDecimalPlaces(fl goValidator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	return d.Equal(d.Round(int32(places)))
}

func validateDecimalAbsLessThan(fl goValidator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return d.Abs().LessThan(limit)
}

var entryRuleMessages = map[string]string{
	"date_only":      "date has wrong format, use YYYY-MM-DD",
	"oneof":          `bias must be one of "buy", "sell" or empty`,
	"decimal_places": "pnl must have no more than 2 decimal places",
	"decimal_abs_lt": "pnl must have no more than 10 digits in total",
}

func entryValidationError(err error) error {
	var verrs goValidator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := entryRuleMessages[verrs[0].Tag()]; ok {
			return fmt.Errorf("%w: %s", ErrInvalidEntry, msg)
		}
		return fmt.Errorf("%w: %s failed on %s", ErrInvalidEntry, verrs[0].Field(), verrs[0].Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
}
