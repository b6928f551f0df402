// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"repair-crm/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует все кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("phone_digits", isPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("decimal_string", isDecimalString); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	return nil
}

var phoneRegexp = regexp.MustCompile(`^\+?[\d\s\-()]{10,18}$`)

func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegexp.MatchString(fl.Field().String())
}

// Денежные поля CMS хранит десятичными строками вида "1500" / "1500.50".
var decimalRegexp = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

func isDecimalString(fl validator.FieldLevel) bool {
	return decimalRegexp.MatchString(fl.Field().String())
}

func isOrderStatus(fl validator.FieldLevel) bool {
	return constants.IsValidOrderStatus(fl.Field().String())
}
