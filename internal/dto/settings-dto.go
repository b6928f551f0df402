package dto

// UpdateSettingsDTO - массовое редактирование справочников. Каждый список
// приходит текстом с разделителем "|", как его и хранит CMS.
type UpdateSettingsDTO struct {
	RefusalReasons    *string `json:"refusal_reasons,omitempty"`
	EquipmentTypes    *string `json:"equipment_types,omitempty"`
	IncomeCategories  *string `json:"income_categories,omitempty"`
	OutcomeCategories *string `json:"outcome_categories,omitempty"`
}

type SettingsResponseDTO struct {
	RefusalReasons    []string `json:"refusal_reasons"`
	EquipmentTypes    []string `json:"equipment_types"`
	IncomeCategories  []string `json:"income_categories"`
	OutcomeCategories []string `json:"outcome_categories"`
}
