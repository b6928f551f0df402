package constants

// Роли пользователей в CMS (закрытый список).
const (
	RoleMaster  uint64 = 1
	RoleAdmin   uint64 = 3
	RoleManager uint64 = 4
)

// Типы записей журнала доходов/расходов.
const (
	LedgerTypeIncome  = "income"
	LedgerTypeOutcome = "outcome"
)

// Операции кассы.
const (
	CashboxOpIncome     = "Приход"
	CashboxOpOutcome    = "Расход"
	CashboxOpCorrection = "Корректировка"
)

// Имена ресурсов CMS. Они же - неймспейсы кеша.
const (
	ResourceOrders           = "orders"
	ResourceClients          = "clients"
	ResourceUsers            = "users"
	ResourceIncomes          = "incomes"
	ResourceOutcomes         = "outcomes"
	ResourceManualIO         = "manual-incomes-outcomes"
	ResourceCashbox          = "cashbox"
	ResourceCashTransactions = "cash-transactions"
	ResourceSetting          = "setting"
)
