package models

import (
	"github.com/haguru/mongolens/pkg/serializer"
	"go.mongodb.org/mongo-driver/bson"
)

// QueryRequest holds the parameters of a paginated document read.
type QueryRequest struct {
	ConnectionString string
	Database         string
	Collection       string
	Filter           string
	Page             int64
	Limit            int64
}

// QueryResult is the payload of queryDocuments.
type QueryResult struct {
	Documents  []serializer.Document `json:"documents"`
	Fields     []string              `json:"fields"`
	Pagination Pagination            `json:"pagination"`
}

// SaveRequest holds the parameters of a single-document partial update.
// ID is the caller's identifier as received: a string or a JSON number.
type SaveRequest struct {
	ConnectionString string
	Database         string
	Collection       string
	ID               interface{}
	Update           bson.D
}
