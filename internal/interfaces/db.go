package interfaces

import (
	"context"

	"github.com/haguru/mongolens/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MongoSession is a live connection to one MongoDB deployment.
// Implementations must be safe for concurrent use; requests for the same
// connection string share one session.
type MongoSession interface {
	// Ping issues a lightweight round trip to the server.
	Ping(ctx context.Context) error

	// ListDatabases returns name and on-disk size of every visible database.
	ListDatabases(ctx context.Context) ([]models.DatabaseInfo, error)

	// ListCollections returns the collections of a database.
	ListCollections(ctx context.Context, database string) ([]models.CollectionInfo, error)

	// CountDocuments returns the exact number of documents matching filter.
	CountDocuments(ctx context.Context, database, collection string, filter bson.D) (int64, error)

	// EstimatedDocumentCount returns the collection size from metadata, ignoring any filter.
	EstimatedDocumentCount(ctx context.Context, database, collection string) (int64, error)

	// Find returns at most limit documents matching filter after skipping skip, in cursor order.
	Find(ctx context.Context, database, collection string, filter bson.D, skip, limit int64) ([]bson.D, error)

	// SampleFieldNames returns the top-level keys found in a random sample of size documents.
	SampleFieldNames(ctx context.Context, database, collection string, size int) ([]string, error)

	// FindOneAndSet applies $set to the document whose _id equals id and returns
	// the document after the update. It never upserts; a missing id yields mongo.ErrNoDocuments.
	FindOneAndSet(ctx context.Context, database, collection string, id interface{}, fields bson.D) (bson.D, error)

	// Disconnect closes the session.
	Disconnect(ctx context.Context) error
}

// SessionProvider hands out live sessions keyed by connection string.
type SessionProvider interface {
	Session(ctx context.Context, connectionString string) (MongoSession, error)
}

// Connector establishes new sessions.
type Connector interface {
	Connect(ctx context.Context, connectionString string) (MongoSession, error)
}

// PoolStats exposes the size of a session cache.
type PoolStats interface {
	Len() int
}
