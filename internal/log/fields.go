package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPath      = "path"
	FieldLoadID    = "load_id"
	FieldRows      = "rows"
	FieldSource    = "source_rows"
	FieldExcluded  = "excluded_rows"
	FieldDuration  = "duration_ms"
	FieldField     = "field"
	FieldShared    = "shared"
)

// Components
const (
	ComponentApp       = "app"
	ComponentDataset   = "dataset"
	ComponentCache     = "cache"
	ComponentDashboard = "dashboard"
	ComponentRender    = "render"
)

// Operations
const (
	OpLoad     = "load"
	OpClear    = "clear"
	OpValidate = "validate"
	OpRender   = "render"
	OpExport   = "export"
)
