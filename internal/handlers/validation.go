package handlers

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerCustomValidators installs the shared request formats on gin's
// binding engine. Money amounts and calendar dates arrive as strings and are
// rejected at bind time before the services parse them.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// At most two fraction digits and strictly positive.
	_ = v.RegisterValidation("money_amount", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return amount.IsPositive() && amount.Equal(amount.Round(2))
	})

	_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
}
