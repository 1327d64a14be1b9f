package explorerservice

import (
	"context"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/pkg/helper"
)

// DiscoverFields returns the top-level field names seen in a random sample of
// the collection, without _id. It never fails: sampling errors yield an empty list.
func (s *ExplorerService) DiscoverFields(ctx context.Context, session interfaces.MongoSession, database, collection string) []string {
	keys, err := session.SampleFieldNames(ctx, database, collection, s.Query.SampleSize)
	if err != nil {
		s.Logger.Warn("Could not extract fields", "func", helper.GetFuncName(), "db", database, "collection", collection, "error", err)
		return []string{}
	}

	fields := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == IDField || seen[k] {
			continue
		}
		seen[k] = true
		fields = append(fields, k)
	}
	return fields
}
