package constants

// Статусы заявки. Значения хранятся в CMS как есть, по-русски.
const (
	StatusNew        = "Новая"
	StatusApproval   = "Согласовать"
	StatusInProgress = "В работе"
	StatusDiagnostic = "Диагностика"
	StatusReady      = "Готов"
	StatusRefused    = "Отказ"
	StatusIssued     = "Выдан"
)

var OrderStatuses = []string{
	StatusNew,
	StatusApproval,
	StatusInProgress,
	StatusDiagnostic,
	StatusReady,
	StatusRefused,
	StatusIssued,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
