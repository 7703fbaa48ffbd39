package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldRequestID      = "request_id"
	FieldClientIP       = "client_ip"
	FieldMethod         = "method"
	FieldPath           = "path"
	FieldStatusCode     = "status_code"
	FieldDuration       = "duration_ms"
	FieldError          = "error"
	FieldSource         = "source"
	FieldOU             = "ou"
	FieldCenter         = "center"
	FieldRowCount       = "row_count"
	FieldColumnCount    = "column_count"
	FieldDatasetVersion = "dataset_version"
	FieldSpreadsheetID  = "spreadsheet_id"
	FieldExportPath     = "export_path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
)
