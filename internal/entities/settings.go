package entities

import "strings"

// Settings - singleton CMS с четырьмя справочниками. В CMS каждый список
// хранится одной строкой с разделителем "|", редактируется целиком.
type Settings struct {
	ID                uint64 `json:"id"`
	DocumentID        string `json:"documentId"`
	RefusalReasons    string `json:"refusal_reasons"`
	EquipmentTypes    string `json:"equipment_types"`
	IncomeCategories  string `json:"income_categories"`
	OutcomeCategories string `json:"outcome_categories"`
}

// SplitList разбирает pipe-delimited строку справочника в срез значений.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinList собирает срез значений обратно в строку справочника.
func JoinList(values []string) string {
	clean := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			clean = append(clean, trimmed)
		}
	}
	return strings.Join(clean, "|")
}
