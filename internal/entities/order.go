package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ChatMessage - одно сообщение во встроенном чате заявки.
// Массив append-only: сообщения не редактируются и не удаляются.
type ChatMessage struct {
	Message  string `json:"message"`
	User     string `json:"user"`
	Datetime string `json:"datetime"`
}

// Order - заявка на ремонт. Каноническая запись живёт в CMS, здесь
// только снимок на момент чтения.
type Order struct {
	ID          uint64 `json:"id"`
	DocumentID  string `json:"documentId"`
	Title       string `json:"title"`
	OrderStatus string `json:"orderStatus"`

	VisitDate      null.Time `json:"visit_date"`
	Deadline       null.Time `json:"deadline"`
	DiagnosticDate null.Time `json:"diagnostic_date"`
	DateOfIssue    null.Time `json:"date_of_issue"`

	DeviceType    string      `json:"device_type"`
	DeviceBrand   string      `json:"device_brand"`
	DeviceModel   string      `json:"device_model"`
	SerialNumber  null.String `json:"serial_number"`
	Appearance    null.String `json:"appearance"`
	Complectation null.String `json:"complectation"`
	Defect        string      `json:"defect"`

	// Денежные поля CMS хранит десятичными строками.
	TotalCost null.String `json:"total_cost"`
	Prepay    null.String `json:"prepay"`

	// Флаги workflow согласования.
	IsApprove  bool `json:"is_approve"`
	IsRevision bool `json:"is_revision"`

	Client *Client       `json:"client,omitempty"`
	Master *User         `json:"master,omitempty"`
	Ledger []LedgerEntry `json:"incomes_outcomes,omitempty"`
	Chat   []ChatMessage `json:"chat,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
