package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/middleware"
	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/internal/models/dto"
	"github.com/haguru/mongolens/pkg/serializer"

	structValidator "github.com/go-playground/validator/v10"
)

type Route struct {
	Metrics   interfaces.Metrics
	Explorer  interfaces.ExplorerService
	Pool      interfaces.PoolStats
	Logger    interfaces.Logger
	validator *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, explorer interfaces.ExplorerService, pool interfaces.PoolStats,
	validator *structValidator.Validate, logger interfaces.Logger,
) *Route {
	return &Route{
		Metrics:   metrics,
		Explorer:  explorer,
		Pool:      pool,
		Logger:    logger,
		validator: validator,
	}
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *structValidator.Validate {
	v := structValidator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterMetrics registers the API metrics on m.
func RegisterMetrics(m interfaces.Metrics) {
	m.RegisterCounterVec(APIRequestsTotal, APIRequestsTotalHelp, []string{"operation"})
	m.RegisterCounterVec(APIErrorsTotal, APIErrorsTotalHelp, []string{"operation", "kind"})
	m.RegisterHistogramVec(APIRequestDurationSeconds, APIRequestDurationSecondsHelp,
		APIDurationSecondsBuckets, []string{"operation"})
}

// TestConnection checks that a connection string reaches a server.
func (r *Route) TestConnection(w http.ResponseWriter, req *http.Request) {
	body := &dto.ConnectionRequestDTO{}
	if !r.decode(w, req, OpTestConnection, body) {
		return
	}

	start := time.Now()
	status, err := r.Explorer.TestConnection(req.Context(), body.ConnectionString)
	r.finish(w, req, OpTestConnection, start, status, err)
}

// ListDatabases lists the databases of a deployment.
func (r *Route) ListDatabases(w http.ResponseWriter, req *http.Request) {
	body := &dto.ConnectionRequestDTO{}
	if !r.decode(w, req, OpListDatabases, body) {
		return
	}

	start := time.Now()
	databases, err := r.Explorer.ListDatabases(req.Context(), body.ConnectionString)
	r.finish(w, req, OpListDatabases, start, databases, err)
}

// ListCollections lists the collections of one database.
func (r *Route) ListCollections(w http.ResponseWriter, req *http.Request) {
	body := &dto.CollectionsRequestDTO{}
	if !r.decode(w, req, OpListCollections, body) {
		return
	}

	start := time.Now()
	collections, err := r.Explorer.ListCollections(req.Context(), body.ConnectionString, body.Database)
	r.finish(w, req, OpListCollections, start, collections, err)
}

// QueryDocuments returns one page of documents.
func (r *Route) QueryDocuments(w http.ResponseWriter, req *http.Request) {
	body := &dto.QueryRequestDTO{}
	if !r.decode(w, req, OpQueryDocuments, body) {
		return
	}

	start := time.Now()
	result, err := r.Explorer.QueryDocuments(req.Context(), models.QueryRequest{
		ConnectionString: body.ConnectionString,
		Database:         body.Database,
		Collection:       body.Collection,
		Filter:           body.FilterText(),
		Page:             body.Page,
		Limit:            body.Limit,
	})
	r.finish(w, req, OpQueryDocuments, start, result, err)
}

// SaveDocument applies a partial update to one document.
func (r *Route) SaveDocument(w http.ResponseWriter, req *http.Request) {
	body := &dto.SaveRequestDTO{}
	if !r.decode(w, req, OpSaveDocument, body) {
		return
	}

	update, err := serializer.ParseObject(body.Update)
	if err != nil {
		r.fail(w, req, OpSaveDocument, models.NewValidationError(ErrInvalidUpdate))
		return
	}

	start := time.Now()
	doc, err := r.Explorer.SaveDocument(req.Context(), models.SaveRequest{
		ConnectionString: body.ConnectionString,
		Database:         body.Database,
		Collection:       body.Collection,
		ID:               body.ID,
		Update:           update,
	})
	r.finish(w, req, OpSaveDocument, start, doc, err)
}

// Health reports liveness and the number of cached clients.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.writeJSON(w, http.StatusMethodNotAllowed, models.Fail(errors.New(ErrMethodNotAllowed)))
		return
	}

	clients := 0
	if r.Pool != nil {
		clients = r.Pool.Len()
	}
	r.writeJSON(w, http.StatusOK, models.OK(&models.HealthStatus{Status: StatusOK, Clients: clients}))
}

// decode checks method and content type, then reads and validates the body.
// On failure it writes the error envelope and returns false.
func (r *Route) decode(w http.ResponseWriter, req *http.Request, op string, dst interface{}) bool {
	r.incCounterVec(APIRequestsTotal, op)

	if req.Method != http.MethodPost {
		r.fail(w, req, op, &models.Error{Kind: models.ErrKindValidation, Message: ErrMethodNotAllowed}, http.StatusMethodNotAllowed)
		return false
	}

	mediaType, _, err := mime.ParseMediaType(req.Header.Get(ContentType))
	if err != nil || mediaType != ContentTypeJson {
		r.fail(w, req, op, models.NewValidationError(fmt.Sprintf(ErrInvalidContentTypeFormat, req.Header.Get(ContentType))))
		return false
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, MaxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		r.fail(w, req, op, models.NewValidationError(ErrInvalidRequestBody))
		return false
	}

	if err := r.validator.Struct(dst); err != nil {
		r.fail(w, req, op, models.NewValidationError(validationMessage(err)))
		return false
	}
	return true
}

func (r *Route) finish(w http.ResponseWriter, req *http.Request, op string, start time.Time, data interface{}, err error) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogramVec(APIRequestDurationSeconds, time.Since(start).Seconds(), op)
	}
	if err != nil {
		r.fail(w, req, op, err)
		return
	}
	r.writeJSON(w, http.StatusOK, models.OK(data))
}

func (r *Route) fail(w http.ResponseWriter, req *http.Request, op string, err error, status ...int) {
	kind := models.KindOf(err)
	code := StatusFor(err)
	if len(status) > 0 {
		code = status[0]
	}

	r.incCounterVec(APIErrorsTotal, op, string(kind))
	if r.Logger != nil {
		r.Logger.Warn("Request failed", "operation", op, "kind", kind, "status", code,
			"request_id", middleware.RequestIDFromContext(req.Context()), "error", err)
	}
	r.writeJSON(w, code, models.Fail(err))
}

func (r *Route) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(ContentType, ContentTypeJson)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && r.Logger != nil {
		r.Logger.Error(ErrFailedToEncodeResponse, "error", err)
	}
}

func (r *Route) incCounterVec(name string, labels ...string) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(name, labels...)
	}
}

// StatusFor maps an error to the HTTP status of its envelope.
func StatusFor(err error) int {
	switch models.KindOf(err) {
	case models.ErrKindValidation, models.ErrKindFilterParse:
		return http.StatusBadRequest
	case models.ErrKindNotFound:
		return http.StatusNotFound
	case models.ErrKindConnection:
		if models.ReasonOf(err) == models.ReasonInvalidURI {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func validationMessage(err error) string {
	var verrs structValidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, ", ")
}
