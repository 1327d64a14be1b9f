package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haguru/mongolens/internal/interfaces/mocks"
	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/metrics"
	"github.com/haguru/mongolens/pkg/serializer"
	"github.com/haguru/mongolens/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testURI = "mongodb://db.example.com:27017"

type poolLen int

func (p poolLen) Len() int { return int(p) }

func newTestRoute(t *testing.T) (*Route, *mocks.MockExplorerService) {
	t.Helper()
	m := metrics.NewMetrics("routes_test")
	RegisterMetrics(m)
	explorer := mocks.NewMockExplorerService(t)
	return NewRoute(m, explorer, poolLen(2), NewValidator(), zerolog.NewNopLogger()), explorer
}

func post(t *testing.T, handler http.HandlerFunc, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(ContentType, ContentTypeJson)
	rr := httptest.NewRecorder()
	handler(rr, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return rr, envelope
}

func TestRequestGuards(t *testing.T) {
	r, _ := newTestRoute(t)

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
	}{
		{"invalid method", http.MethodGet, ContentTypeJson, "", http.StatusMethodNotAllowed},
		{"missing content type", http.MethodPost, "", `{"connectionString":"x"}`, http.StatusBadRequest},
		{"wrong content type", http.MethodPost, "text/plain", `{"connectionString":"x"}`, http.StatusBadRequest},
		{"invalid JSON body", http.MethodPost, ContentTypeJson, `{"connectionString":`, http.StatusBadRequest},
		{"missing field", http.MethodPost, ContentTypeJson, `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, TestConnectionRouteAPI, bytes.NewBufferString(tt.body))
			if tt.contentType != "" {
				req.Header.Set(ContentType, tt.contentType)
			}
			rr := httptest.NewRecorder()
			r.TestConnection(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var resp models.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	r, _ := newTestRoute(t)

	rr, envelope := post(t, r.ListCollections, ListCollectionsRouteAPI, `{"connectionString":"`+testURI+`"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "database is required", envelope["message"])
}

func TestTestConnection(t *testing.T) {
	r, explorer := newTestRoute(t)
	explorer.On("TestConnection", mock.Anything, testURI).
		Return(&models.ConnectionStatus{Message: models.MsgConnectionSucceeded}, nil)

	rr, envelope := post(t, r.TestConnection, TestConnectionRouteAPI, `{"connectionString":"`+testURI+`"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, map[string]interface{}{"message": "Connection successful"}, envelope["data"])
}

func TestListDatabases(t *testing.T) {
	r, explorer := newTestRoute(t)
	explorer.On("ListDatabases", mock.Anything, testURI).
		Return([]models.DatabaseInfo{{Name: "shop", SizeOnDisk: 8192}}, nil)

	rr, envelope := post(t, r.ListDatabases, ListDatabasesRouteAPI, `{"connectionString":"`+testURI+`"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	data := envelope["data"].([]interface{})
	require.Len(t, data, 1)
	db := data[0].(map[string]interface{})
	assert.Equal(t, "shop", db["name"])
	assert.Equal(t, float64(8192), db["sizeOnDisk"])
}

func TestQueryDocuments(t *testing.T) {
	r, explorer := newTestRoute(t)
	want := models.QueryRequest{
		ConnectionString: testURI,
		Database:         "shop",
		Collection:       "orders",
		Filter:           `{"a":{"$gt":1}}`,
		Page:             2,
		Limit:            10,
	}
	explorer.On("QueryDocuments", mock.Anything, want).Return(&models.QueryResult{
		Documents:  []serializer.Document{{{Key: "_id", Value: int32(11)}, {Key: "a", Value: int32(2)}}},
		Fields:     []string{"a"},
		Pagination: models.Pagination{CurrentPage: 2, TotalPages: 2, TotalDocuments: 11, Start: 11, End: 11},
	}, nil).Twice()

	bodies := []string{
		`{"connectionString":"` + testURI + `","database":"shop","collection":"orders","filter":"{\"a\":{\"$gt\":1}}","page":2,"limit":10}`,
		`{"connectionString":"` + testURI + `","database":"shop","collection":"orders","filter":{"a":{"$gt":1}},"page":2,"limit":10}`,
	}
	for _, body := range bodies {
		rr, envelope := post(t, r.QueryDocuments, QueryDocumentsRouteAPI, body)

		assert.Equal(t, http.StatusOK, rr.Code)
		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, []interface{}{"a"}, data["fields"])
		assert.Equal(t, float64(11), data["pagination"].(map[string]interface{})["totalDocuments"])
		assert.Contains(t, rr.Body.String(), `{"_id":11,"a":2}`)
	}
}

func TestQueryDocumentsErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"filter parse", models.NewFilterParseError(errors.New("invalid JSON object")), http.StatusBadRequest},
		{"connection", models.NewConnectionError(models.ReasonUnreachable, errors.New("server selection timeout")), http.StatusBadGateway},
		{"invalid uri", models.NewConnectionError(models.ReasonInvalidURI, errors.New("bad scheme")), http.StatusBadRequest},
		{"operation", models.NewOperationError("failed to fetch documents", errors.New("bad")), http.StatusInternalServerError},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, explorer := newTestRoute(t)
			explorer.On("QueryDocuments", mock.Anything, mock.Anything).Return(nil, tt.err)

			rr, envelope := post(t, r.QueryDocuments, QueryDocumentsRouteAPI,
				`{"connectionString":"`+testURI+`","database":"shop","collection":"orders","filter":"{invalid"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, false, envelope["success"])
			assert.Equal(t, tt.err.Error(), envelope["message"])
			assert.NotContains(t, envelope, "data")
		})
	}
}

func TestSaveDocument(t *testing.T) {
	r, explorer := newTestRoute(t)
	explorer.On("SaveDocument", mock.Anything, mock.MatchedBy(func(req models.SaveRequest) bool {
		return req.ID == json.Number("42") &&
			len(req.Update) == 1 && req.Update[0].Key == "name" && req.Update[0].Value == "updated"
	})).Return(serializer.Document{{Key: "_id", Value: int64(42)}, {Key: "name", Value: "updated"}}, nil)

	rr, envelope := post(t, r.SaveDocument, SaveDocumentRouteAPI,
		`{"connectionString":"`+testURI+`","database":"shop","collection":"users","id":42,"update":{"name":"updated"}}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]interface{}{"_id": float64(42), "name": "updated"}, envelope["data"])
}

func TestSaveDocumentNotFound(t *testing.T) {
	r, explorer := newTestRoute(t)
	explorer.On("SaveDocument", mock.Anything, mock.Anything).Return(nil, models.NewNotFoundError(""))

	rr, envelope := post(t, r.SaveDocument, SaveDocumentRouteAPI,
		`{"connectionString":"`+testURI+`","database":"shop","collection":"users","id":"missing","update":{"name":"x"}}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, models.MsgDocumentNotFound, envelope["message"])
}

func TestSaveDocumentRejectsNonObjectUpdate(t *testing.T) {
	r, explorer := newTestRoute(t)

	rr, envelope := post(t, r.SaveDocument, SaveDocumentRouteAPI,
		`{"connectionString":"`+testURI+`","database":"shop","collection":"users","id":"1","update":[1,2]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, ErrInvalidUpdate, envelope["message"])
	explorer.AssertNotCalled(t, "SaveDocument", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRoute(t)

	rr := httptest.NewRecorder()
	r.Health(rr, httptest.NewRequest(http.MethodGet, HealthRouteAPI, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","clients":2}}`, rr.Body.String())
}

func TestMetricsRecorded(t *testing.T) {
	r, explorer := newTestRoute(t)
	explorer.On("ListDatabases", mock.Anything, testURI).Return(nil, models.NewConnectionError(models.ReasonNetwork, errors.New("reset")))

	post(t, r.ListDatabases, ListDatabasesRouteAPI, `{"connectionString":"`+testURI+`"}`)

	families, err := r.Metrics.GetRegistry().Gather()
	require.NoError(t, err)
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	assert.True(t, found["routes_test_"+APIRequestsTotal])
	assert.True(t, found["routes_test_"+APIErrorsTotal])
	assert.True(t, found["routes_test_"+APIRequestDurationSeconds])
}
