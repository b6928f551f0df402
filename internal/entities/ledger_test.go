package entities

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveDatePrefersBusinessDate(t *testing.T) {
	business := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	system := time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)

	entry := LedgerEntry{CreatedDate: null.TimeFrom(business), CreatedAt: system}
	assert.Equal(t, business, entry.EffectiveDate())

	legacy := LedgerEntry{CreatedAt: system}
	assert.Equal(t, system, legacy.EffectiveDate())
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, 100.0, LedgerEntry{Count: 100, Type: "income"}.SignedAmount())
	assert.Equal(t, -100.0, LedgerEntry{Count: 100, Type: "outcome"}.SignedAmount())
}
