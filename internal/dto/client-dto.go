package dto

type CreateClientDTO struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	Phone   string  `json:"phone" validate:"required,phone_digits"`
	Address *string `json:"address,omitempty"`
	Rating  int     `json:"rating" validate:"omitempty,min=1,max=5"`
}

type UpdateClientDTO struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,phone_digits"`
	Address *string `json:"address,omitempty"`
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}
