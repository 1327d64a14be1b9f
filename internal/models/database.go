package models

// DatabaseInfo is one entry of listDatabases.
type DatabaseInfo struct {
	Name       string `json:"name" bson:"name"`
	SizeOnDisk int64  `json:"sizeOnDisk" bson:"sizeOnDisk"`
	Empty      bool   `json:"empty" bson:"empty"`
}

// CollectionInfo is one entry of listCollections.
type CollectionInfo struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type,omitempty" bson:"type"`
}

// ConnectionStatus is the payload of testConnection.
type ConnectionStatus struct {
	Message string `json:"message"`
}

// HealthStatus is the payload of the liveness endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
}
