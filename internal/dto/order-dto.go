package dto

type CreateOrderDTO struct {
	Title          string  `json:"title" validate:"required,min=1,max=255"`
	ClientID       string  `json:"client_id" validate:"required"`
	MasterID       *string `json:"master_id,omitempty"`
	DeviceType     string  `json:"device_type" validate:"required"`
	DeviceBrand    string  `json:"device_brand,omitempty"`
	DeviceModel    string  `json:"device_model,omitempty"`
	SerialNumber   *string `json:"serial_number,omitempty"`
	Appearance     *string `json:"appearance,omitempty"`
	Complectation  *string `json:"complectation,omitempty"`
	Defect         string  `json:"defect" validate:"required,min=3"`
	VisitDate      *string `json:"visit_date,omitempty"`
	Deadline       *string `json:"deadline,omitempty"`
	TotalCost      *string `json:"total_cost,omitempty" validate:"omitempty,decimal_string"`
	Prepay         *string `json:"prepay,omitempty" validate:"omitempty,decimal_string"`
}

type UpdateOrderDTO struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	MasterID       *string `json:"master_id,omitempty"`
	DeviceType     *string `json:"device_type,omitempty"`
	DeviceBrand    *string `json:"device_brand,omitempty"`
	DeviceModel    *string `json:"device_model,omitempty"`
	SerialNumber   *string `json:"serial_number,omitempty"`
	Appearance     *string `json:"appearance,omitempty"`
	Complectation  *string `json:"complectation,omitempty"`
	Defect         *string `json:"defect,omitempty" validate:"omitempty,min=3"`
	VisitDate      *string `json:"visit_date,omitempty"`
	Deadline       *string `json:"deadline,omitempty"`
	DiagnosticDate *string `json:"diagnostic_date,omitempty"`
	DateOfIssue    *string `json:"date_of_issue,omitempty"`
	TotalCost      *string `json:"total_cost,omitempty" validate:"omitempty,decimal_string"`
	Prepay         *string `json:"prepay,omitempty" validate:"omitempty,decimal_string"`
}

// ChangeOrderStatusDTO - смена статуса заявки. Статус меняется только
// вместе с флагами согласования, см. OrderService.ChangeStatus.
type ChangeOrderStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}

// AppendChatMessageDTO - новое сообщение чата. Автор необязателен: если
// поле пустое, берётся subject из токена запроса.
type AppendChatMessageDTO struct {
	Message string `json:"message" validate:"required,min=1"`
	User    string `json:"user,omitempty"`
}
