package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Cashbox - единственный на всю систему баланс кассы.
type Cashbox struct {
	ID         uint64    `json:"id"`
	DocumentID string    `json:"documentId"`
	Balance    float64   `json:"balance"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CashTransaction - запись append-only журнала кассовых операций.
// Сверка с журналом доходов/расходов не выполняется.
type CashTransaction struct {
	ID         uint64      `json:"id"`
	DocumentID string      `json:"documentId"`
	Operation  string      `json:"operation"` // Приход | Расход | Корректировка
	Amount     float64     `json:"amount"`
	Note       null.String `json:"note"`
	User       *User       `json:"user,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
