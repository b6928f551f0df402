package entities

import "time"

// StatsTiles - плитки дашборда за период.
type StatsTiles struct {
	OrdersTotal    int            `json:"orders_total"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	IncomeTotal    float64        `json:"income_total"`
	OutcomeTotal   float64        `json:"outcome_total"`
	Net            float64        `json:"net"`
}

// MasterReportRow - строка отчёта по мастеру.
type MasterReportRow struct {
	MasterID     uint64  `json:"master_id"`
	MasterName   string  `json:"master_name"`
	OrdersIssued int     `json:"orders_issued"`
	Revenue      float64 `json:"revenue"`
	Income       float64 `json:"income"`
	Outcome      float64 `json:"outcome"`
	ManualIO     float64 `json:"manual_io"`
	Balance      float64 `json:"balance"`
}

// ServiceReportRow - строка сводного отчёта сервиса за период.
type ServiceReportRow struct {
	Period  string  `json:"period"`
	Issued  int     `json:"issued"`
	Revenue float64 `json:"revenue"`
	Income  float64 `json:"income"`
	Outcome float64 `json:"outcome"`
	Net     float64 `json:"net"`
}

// ReportPeriod - границы периода отчёта.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
