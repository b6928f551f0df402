package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Role struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// User - сотрудник: мастер (роль 1), админ (3) или менеджер (4).
// Balance - накопительный итог по утверждённым записям журнала.
type User struct {
	ID         uint64      `json:"id"`
	DocumentID string      `json:"documentId"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Phone      null.String `json:"phone"`
	Email      string      `json:"email"`
	Role       *Role       `json:"role,omitempty"`
	Balance    float64     `json:"balance"`
	Blocked    bool        `json:"blocked"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
