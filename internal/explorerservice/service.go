package explorerservice

import (
	"context"
	"errors"
	"strings"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/helper"
	"github.com/haguru/mongolens/pkg/serializer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExplorerService runs the browse and edit operations against sessions
// handed out by a SessionProvider.
type ExplorerService struct {
	Sessions interfaces.SessionProvider
	Logger   interfaces.Logger
	Query    config.QueryConfig
}

var _ interfaces.ExplorerService = (*ExplorerService)(nil)

// NewExplorerService creates a new ExplorerService instance.
func NewExplorerService(sessions interfaces.SessionProvider, query config.QueryConfig, logger interfaces.Logger) *ExplorerService {
	if query.DefaultPageSize < 1 {
		query.DefaultPageSize = config.DefaultPageSize
	}
	if query.MaxPageSize < query.DefaultPageSize {
		query.MaxPageSize = query.DefaultPageSize
	}
	if query.SampleSize < 1 {
		query.SampleSize = config.DefaultSampleSize
	}

	return &ExplorerService{
		Sessions: sessions,
		Logger:   logger,
		Query:    query,
	}
}

// TestConnection acquires a session and pings the server.
func (s *ExplorerService) TestConnection(ctx context.Context, connectionString string) (*models.ConnectionStatus, error) {
	funcName := helper.GetFuncName()
	if err := required(connectionString, ErrConnectionStringRequired); err != nil {
		return nil, err
	}

	session, err := s.Sessions.Session(ctx, connectionString)
	if err != nil {
		s.Logger.Warn(models.MsgConnectionFailed, "func", funcName, "client", helper.Fingerprint(connectionString), "error", err)
		return nil, err
	}

	if err := session.Ping(ctx); err != nil {
		s.Logger.Warn(ErrPingFailed, "func", funcName, "client", helper.Fingerprint(connectionString), "error", err)
		return nil, connectionError(err)
	}

	return &models.ConnectionStatus{Message: models.MsgConnectionSucceeded}, nil
}

// ListDatabases returns the databases visible through connectionString.
func (s *ExplorerService) ListDatabases(ctx context.Context, connectionString string) ([]models.DatabaseInfo, error) {
	funcName := helper.GetFuncName()
	if err := required(connectionString, ErrConnectionStringRequired); err != nil {
		return nil, err
	}

	session, err := s.Sessions.Session(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	databases, err := session.ListDatabases(ctx)
	if err != nil {
		s.Logger.Error(ErrListDatabases, "func", funcName, "client", helper.Fingerprint(connectionString), "error", err)
		return nil, serviceError(ErrListDatabases, err)
	}
	s.Logger.Debug("Listed databases", "func", funcName, "count", len(databases))
	return databases, nil
}

// ListCollections returns the collections of database.
func (s *ExplorerService) ListCollections(ctx context.Context, connectionString, database string) ([]models.CollectionInfo, error) {
	funcName := helper.GetFuncName()
	if err := required(connectionString, ErrConnectionStringRequired); err != nil {
		return nil, err
	}
	if err := required(database, ErrDatabaseRequired); err != nil {
		return nil, err
	}

	session, err := s.Sessions.Session(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	collections, err := session.ListCollections(ctx, database)
	if err != nil {
		s.Logger.Error(ErrListCollections, "func", funcName, "db", database, "error", err)
		return nil, serviceError(ErrListCollections, err)
	}
	return collections, nil
}

// QueryDocuments reads one page of documents matching req.Filter together
// with the sampled field names and the page position.
func (s *ExplorerService) QueryDocuments(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error) {
	funcName := helper.GetFuncName()
	if err := requireTarget(req.ConnectionString, req.Database, req.Collection); err != nil {
		return nil, err
	}

	filter, err := ParseFilter(req.Filter)
	if err != nil {
		s.Logger.Debug(models.MsgInvalidFilter, "func", funcName, "error", err)
		return nil, err
	}
	page, limit := s.normalizePage(req.Page, req.Limit)

	session, err := s.Sessions.Session(ctx, req.ConnectionString)
	if err != nil {
		return nil, err
	}

	total, err := s.countDocuments(ctx, session, req.Database, req.Collection, filter)
	if err != nil {
		return nil, serviceError(ErrCountDocuments, err)
	}

	page, _, skip := models.PageWindow(total, page, limit)
	docs, err := session.Find(ctx, req.Database, req.Collection, filter, skip, limit)
	if err != nil {
		s.Logger.Error(ErrFindDocuments, "func", funcName, "db", req.Database, "collection", req.Collection, "error", err)
		return nil, serviceError(ErrFindDocuments, err)
	}

	fields := s.DiscoverFields(ctx, session, req.Database, req.Collection)

	s.Logger.Debug("Fetched documents", "func", funcName, "db", req.Database, "collection", req.Collection,
		"page", page, "returned", len(docs), "total", total)

	return &models.QueryResult{
		Documents:  serializer.SerializeDocuments(docs),
		Fields:     fields,
		Pagination: models.NewPagination(total, page, limit, len(docs)),
	}, nil
}

// SaveDocument sets the given fields on the document identified by req.ID
// and returns the document as stored after the update.
func (s *ExplorerService) SaveDocument(ctx context.Context, req models.SaveRequest) (serializer.Document, error) {
	funcName := helper.GetFuncName()
	if err := requireTarget(req.ConnectionString, req.Database, req.Collection); err != nil {
		return nil, err
	}
	if isEmptyID(req.ID) {
		return nil, models.NewValidationError(ErrIDRequired)
	}

	fields := withoutID(req.Update)
	if len(fields) == 0 {
		return nil, models.NewValidationError(ErrUpdateRequired)
	}

	session, err := s.Sessions.Session(ctx, req.ConnectionString)
	if err != nil {
		return nil, err
	}

	id := NativeID(req.ID)
	doc, err := session.FindOneAndSet(ctx, req.Database, req.Collection, id, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.Logger.Info(models.MsgDocumentNotFound, "func", funcName, "db", req.Database, "collection", req.Collection)
			return nil, models.NewNotFoundError(models.MsgDocumentNotFound)
		}
		s.Logger.Error(ErrSaveDocument, "func", funcName, "db", req.Database, "collection", req.Collection, "error", err)
		return nil, serviceError(ErrSaveDocument, err)
	}

	s.Logger.Info("Document saved", "func", funcName, "db", req.Database, "collection", req.Collection, "fields", len(fields))
	return serializer.SerializeDocument(doc), nil
}

// ParseFilter turns filter text into a query document. Empty text and "{}"
// match everything.
func ParseFilter(text string) (bson.D, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == MatchAllFilter {
		return bson.D{}, nil
	}

	filter, err := serializer.ParseObject([]byte(text))
	if err != nil {
		return nil, models.NewFilterParseError(err)
	}
	return filter, nil
}

func (s *ExplorerService) normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.Query.DefaultPageSize
	}
	if limit > s.Query.MaxPageSize {
		limit = s.Query.MaxPageSize
	}
	return page, limit
}

func withoutID(update bson.D) bson.D {
	fields := make(bson.D, 0, len(update))
	for _, e := range update {
		if e.Key == IDField {
			continue
		}
		fields = append(fields, e)
	}
	return fields
}

func isEmptyID(id interface{}) bool {
	switch v := id.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func required(value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return models.NewValidationError(msg)
	}
	return nil
}

func requireTarget(connectionString, database, collection string) error {
	if err := required(connectionString, ErrConnectionStringRequired); err != nil {
		return err
	}
	if err := required(database, ErrDatabaseRequired); err != nil {
		return err
	}
	return required(collection, ErrCollectionRequired)
}

// serviceError keeps classified errors and wraps everything else as an operation error.
func serviceError(msg string, err error) error {
	var modelErr *models.Error
	if errors.As(err, &modelErr) {
		return err
	}
	return models.NewOperationError(msg, err)
}

func connectionError(err error) error {
	var modelErr *models.Error
	if errors.As(err, &modelErr) {
		return err
	}
	return models.NewConnectionError(models.ReasonNetwork, err)
}
