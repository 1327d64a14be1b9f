package mongo

const (
	IDFIELD     = "_id"
	ADMINDB     = "admin"
	MAXPOOLSIZE = 20

	SchemeStandard = "mongodb://"
	SchemeSRV      = "mongodb+srv://"

	// driver error code for a failed SASL/SCRAM exchange
	authFailedCode    = 18
	authFailedMessage = "authentication failed"

	// pool metric names, registered under the service namespace
	MetricPoolClients       = "mongo_pool_clients"
	MetricPoolConnects      = "mongo_pool_connects_total"
	MetricPoolConnectErrors = "mongo_pool_connect_errors_total"
	MetricPoolEvictions     = "mongo_pool_evictions_total"

	EmptyURIErrMsg       = "connection string is empty"
	InvalidSchemeErrMsg  = "connection string must start with mongodb:// or mongodb+srv://"
	LocalhostDeniedMsg   = "connections to local hosts are disabled"
	ConnectErrMsg        = "failed to connect"
	PingErrMsg           = "failed to ping server"
	ListDatabasesErrMsg  = "failed to list databases"
	ListCollectionErrMsg = "failed to list collections"
	CountErrMsg          = "failed to count documents"
	FindErrMsg           = "failed to find documents"
	DecodeErrMsg         = "failed to decode documents"
	SampleErrMsg         = "failed to sample field names"
	UpdateErrMsg         = "failed to update document"
	PoolClosedErrMsg     = "connection pool is closed"
)
