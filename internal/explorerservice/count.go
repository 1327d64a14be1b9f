package explorerservice

import (
	"context"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/pkg/helper"

	"go.mongodb.org/mongo-driver/bson"
)

// countDocuments prefers the exact filtered count. When it fails the
// collection size from metadata is used instead and the filter is ignored.
func (s *ExplorerService) countDocuments(ctx context.Context, session interfaces.MongoSession, database, collection string, filter bson.D) (int64, error) {
	funcName := helper.GetFuncName()

	total, err := tryExactCount(ctx, session, database, collection, filter)
	if err == nil {
		return total, nil
	}
	s.Logger.Warn("Exact count failed, using estimated count", "func", funcName, "db", database, "collection", collection, "error", err)

	return fallbackEstimatedCount(ctx, session, database, collection)
}

func tryExactCount(ctx context.Context, session interfaces.MongoSession, database, collection string, filter bson.D) (int64, error) {
	return session.CountDocuments(ctx, database, collection, filter)
}

func fallbackEstimatedCount(ctx context.Context, session interfaces.MongoSession, database, collection string) (int64, error) {
	return session.EstimatedDocumentCount(ctx, database, collection)
}
