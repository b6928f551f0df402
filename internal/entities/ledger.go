package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// LedgerEntry - запись журнала доходов/расходов (income/outcome).
//
// CreatedDate - бизнес-дата операции, её назначает оператор и она может
// отсутствовать у старых записей (исторический мигрционный долг, см.
// операцию починки дат). CreatedAt - системная метка CMS; отчёты берут
// CreatedDate и откатываются на CreatedAt, когда бизнес-даты нет.
type LedgerEntry struct {
	ID         uint64      `json:"id"`
	DocumentID string      `json:"documentId"`
	Count      float64     `json:"count"`
	Type       string      `json:"type"` // income | outcome
	Note       null.String `json:"note"`
	IsApproved bool        `json:"isApproved"`
	PostingKey null.String `json:"posting_key"`

	Order *Order `json:"order,omitempty"`
	User  *User  `json:"user,omitempty"`

	CreatedDate null.Time `json:"createdDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EffectiveDate - дата, по которой запись попадает в периодные выборки.
func (e LedgerEntry) EffectiveDate() time.Time {
	if e.CreatedDate.Valid {
		return e.CreatedDate.Time
	}
	return e.CreatedAt
}

// SignedAmount - сумма со знаком: расход уменьшает итог.
func (e LedgerEntry) SignedAmount() float64 {
	if e.Type == "outcome" {
		return -e.Count
	}
	return e.Count
}
