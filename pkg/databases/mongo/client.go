package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client implements interfaces.MongoSession on top of a connected driver client.
type Client struct {
	client *mongo.Client
}

var _ interfaces.MongoSession = (*Client)(nil)

// NewClient wraps an already connected driver client.
func NewClient(client *mongo.Client) *Client {
	return &Client{client: client}
}

// Ping runs the ping command against the admin database.
func (c *Client) Ping(ctx context.Context) error {
	err := c.client.Database(ADMINDB).RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", PingErrMsg, err)
	}
	return nil
}

// ListDatabases returns every database the current user may see.
func (c *Client) ListDatabases(ctx context.Context) ([]models.DatabaseInfo, error) {
	res, err := c.client.ListDatabases(ctx, bson.D{}, options.ListDatabases().SetAuthorizedDatabases(true))
	if err != nil {
		return nil, operationError(ListDatabasesErrMsg, err)
	}

	databases := make([]models.DatabaseInfo, 0, len(res.Databases))
	for _, db := range res.Databases {
		databases = append(databases, models.DatabaseInfo{
			Name:       db.Name,
			SizeOnDisk: db.SizeOnDisk,
			Empty:      db.Empty,
		})
	}
	return databases, nil
}

// ListCollections returns name and type (collection, view, timeseries) of
// each collection in database.
func (c *Client) ListCollections(ctx context.Context, database string) ([]models.CollectionInfo, error) {
	specs, err := c.client.Database(database).ListCollectionSpecifications(ctx, bson.D{})
	if err != nil {
		return nil, operationError(ListCollectionErrMsg, err)
	}

	collections := make([]models.CollectionInfo, 0, len(specs))
	for _, spec := range specs {
		collections = append(collections, models.CollectionInfo{Name: spec.Name, Type: spec.Type})
	}
	return collections, nil
}

func (c *Client) CountDocuments(ctx context.Context, database, collection string, filter bson.D) (int64, error) {
	n, err := c.collection(database, collection).CountDocuments(ctx, nonNil(filter))
	if err != nil {
		return 0, operationError(CountErrMsg, err)
	}
	return n, nil
}

func (c *Client) EstimatedDocumentCount(ctx context.Context, database, collection string) (int64, error) {
	n, err := c.collection(database, collection).EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, operationError(CountErrMsg, err)
	}
	return n, nil
}

// Find applies no sort; documents come back in cursor order.
func (c *Client) Find(ctx context.Context, database, collection string, filter bson.D, skip, limit int64) ([]bson.D, error) {
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := c.collection(database, collection).Find(ctx, nonNil(filter), opts)
	if err != nil {
		return nil, operationError(FindErrMsg, err)
	}

	docs := []bson.D{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, operationError(DecodeErrMsg, err)
	}
	return docs, nil
}

// SampleFieldNames draws a random sample and unions the top-level keys server side.
// The result is sorted for stable output.
func (c *Client) SampleFieldNames(ctx context.Context, database, collection string, size int) ([]string, error) {
	cursor, err := c.collection(database, collection).Aggregate(ctx, sampleKeysPipeline(size))
	if err != nil {
		return nil, operationError(SampleErrMsg, err)
	}

	var groups []struct {
		AllKeys []string `bson:"allKeys"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, operationError(SampleErrMsg, err)
	}

	if len(groups) == 0 {
		return []string{}, nil
	}
	keys := groups[0].AllKeys
	sort.Strings(keys)
	return keys, nil
}

// FindOneAndSet never upserts.
func (c *Client) FindOneAndSet(ctx context.Context, database, collection string, id interface{}, fields bson.D) (bson.D, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetUpsert(false)

	filter := bson.D{{Key: IDFIELD, Value: id}}
	update := bson.D{{Key: "$set", Value: fields}}

	var doc bson.D
	err := c.collection(database, collection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, operationError(UpdateErrMsg, err)
	}
	return doc, nil
}

// Disconnect closes every socket held by the driver client.
func (c *Client) Disconnect(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

func (c *Client) collection(database, collection string) *mongo.Collection {
	return c.client.Database(database).Collection(collection)
}

func sampleKeysPipeline(size int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
		{{Key: "$project", Value: bson.D{{Key: "fields", Value: bson.D{{Key: "$objectToArray", Value: "$$ROOT"}}}}}},
		{{Key: "$unwind", Value: "$fields"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "allKeys", Value: bson.D{{Key: "$addToSet", Value: "$fields.k"}}},
		}}},
	}
}

func nonNil(filter bson.D) bson.D {
	if filter == nil {
		return bson.D{}
	}
	return filter
}
