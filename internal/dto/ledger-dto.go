package dto

type CreateLedgerEntryDTO struct {
	Count       float64 `json:"count" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=income outcome"`
	Note        *string `json:"note,omitempty"`
	OrderID     *string `json:"order_id,omitempty"`
	UserID      *string `json:"user_id,omitempty"`
	IsApproved  bool    `json:"isApproved"`
	CreatedDate *string `json:"createdDate,omitempty"`
}

// PostLedgerDTO - проводка "запись журнала + баланс сотрудника" одним
// вызовом шлюза (ручной доход/расход, например оплата смены).
type PostLedgerDTO struct {
	UserID      string  `json:"user_id" validate:"required"`
	Count       float64 `json:"count" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=income outcome"`
	Note        *string `json:"note,omitempty"`
	CreatedDate *string `json:"createdDate,omitempty"`
}
