package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldEmail     = "email"
	FieldExpenseID = "expense_id"
	FieldBudgetID  = "budget_id"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldMonth     = "month"
	FieldDBPath    = "db_path"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentSeed     = "seed"
	ComponentUsers    = "users"
	ComponentExpenses = "expenses"
	ComponentBudgets  = "budgets"
	ComponentCache    = "cache"
	ComponentExport   = "export"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpSeed     = "seed"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
