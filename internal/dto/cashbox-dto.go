package dto

// CashboxOperationDTO - операция кассы: Приход, Расход или Корректировка.
// Для корректировки amount - новое значение баланса, не дельта, поэтому
// ноль здесь допустим; положительность дельты проверяет сервис.
type CashboxOperationDTO struct {
	Operation string  `json:"operation" validate:"required,oneof=Приход Расход Корректировка"`
	Amount    float64 `json:"amount" validate:"gte=0"`
	Note      *string `json:"note,omitempty"`
	UserID    *string `json:"user_id,omitempty"`
}
