package routes

var APIDurationSecondsBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

const (
	// API route constants
	TestConnectionRouteAPI  = "/api/connection/test"
	ListDatabasesRouteAPI   = "/api/databases"
	ListCollectionsRouteAPI = "/api/collections"
	QueryDocumentsRouteAPI  = "/api/documents/query"
	SaveDocumentRouteAPI    = "/api/documents/save"
	HealthRouteAPI          = "/healthz"
	MetricsRouteAPI         = "/metrics"

	// operation names used as metric labels
	OpTestConnection  = "test_connection"
	OpListDatabases   = "list_databases"
	OpListCollections = "list_collections"
	OpQueryDocuments  = "query_documents"
	OpSaveDocument    = "save_document"

	// Content-Type constants
	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	MaxBodyBytes = 1 << 20
	StatusOK     = "ok"

	// Error messages
	ErrMethodNotAllowed         = "method not allowed"
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrInvalidRequestBody       = "invalid request body"
	ErrInvalidUpdate            = "update must be a JSON object"
	ErrFailedToEncodeResponse   = "failed to encode response"

	// metrics constants
	APIRequestsTotal              = "api_requests_total"
	APIRequestsTotalHelp          = "Total number of API requests received"
	APIErrorsTotal                = "api_errors_total"
	APIErrorsTotalHelp            = "Total number of failed API requests"
	APIRequestDurationSeconds     = "api_request_duration_seconds"
	APIRequestDurationSecondsHelp = "Duration of API requests in seconds"
)
