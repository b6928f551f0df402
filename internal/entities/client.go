package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Client - клиент сервиса. Рейтинг 1-5 звёзд.
type Client struct {
	ID         uint64      `json:"id"`
	DocumentID string      `json:"documentId"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	Address    null.String `json:"address"`
	Rating     int         `json:"rating"`
	Orders     []Order     `json:"orders,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
