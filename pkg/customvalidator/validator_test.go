package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestPhoneDigitsRule(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Var("+7 (900) 123-45-67", "phone_digits"))
	assert.NoError(t, v.Var("79001234567", "phone_digits"))
	assert.Error(t, v.Var("123", "phone_digits"))
	assert.Error(t, v.Var("не телефон", "phone_digits"))
}

func TestDecimalStringRule(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Var("1500", "decimal_string"))
	assert.NoError(t, v.Var("1500.50", "decimal_string"))
	assert.Error(t, v.Var("1500,50", "decimal_string"))
	assert.Error(t, v.Var("1500.505", "decimal_string"))
	assert.Error(t, v.Var("-10", "decimal_string"))
}

func TestOrderStatusRule(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Var("Новая", "order_status"))
	assert.NoError(t, v.Var("Выдан", "order_status"))
	assert.Error(t, v.Var("Неизвестный", "order_status"))
}
