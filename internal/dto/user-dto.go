package dto

type UpdateUserDTO struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone   *string  `json:"phone,omitempty" validate:"omitempty,phone_digits"`
	Email   *string  `json:"email,omitempty" validate:"omitempty,email"`
	Blocked *bool    `json:"blocked,omitempty"`
	Balance *float64 `json:"balance,omitempty"`
}
