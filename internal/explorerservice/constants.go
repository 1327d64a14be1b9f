package explorerservice

const (
	// Error messages for explorer operations
	ErrConnectionStringRequired = "connection string is required"
	ErrDatabaseRequired         = "database name is required"
	ErrCollectionRequired       = "collection name is required"
	ErrIDRequired               = "document id is required"
	ErrUpdateRequired           = "update must set at least one field"
	ErrPingFailed               = "failed to ping server"
	ErrListDatabases            = "failed to list databases"
	ErrListCollections          = "failed to list collections"
	ErrCountDocuments           = "failed to count documents"
	ErrFindDocuments            = "failed to fetch documents"
	ErrSaveDocument             = "failed to save document"

	IDField        = "_id"
	MatchAllFilter = "{}"
)
