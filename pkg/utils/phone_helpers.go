package utils

import (
	"regexp"
)

var nonDigitRegexp = regexp.MustCompile(`\D`)

// NormalizePhone приводит телефон к последним десяти цифрам.
// По этому значению ищутся дубликаты клиентов перед созданием.
func NormalizePhone(phone string) string {
	digitsOnly := nonDigitRegexp.ReplaceAllString(phone, "")
	if len(digitsOnly) < 10 {
		return digitsOnly
	}
	return digitsOnly[len(digitsOnly)-10:]
}
