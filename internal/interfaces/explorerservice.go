package interfaces

import (
	"context"

	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/serializer"
)

type ExplorerService interface {
	TestConnection(ctx context.Context, connectionString string) (*models.ConnectionStatus, error)
	ListDatabases(ctx context.Context, connectionString string) ([]models.DatabaseInfo, error)
	ListCollections(ctx context.Context, connectionString, database string) ([]models.CollectionInfo, error)
	QueryDocuments(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error)
	SaveDocument(ctx context.Context, req models.SaveRequest) (serializer.Document, error)
}
