package mocks

import (
	"context"

	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/serializer"
	"github.com/stretchr/testify/mock"
)

// MockExplorerService is a mock type for the ExplorerService type
type MockExplorerService struct {
	mock.Mock
}

func (_m *MockExplorerService) TestConnection(ctx context.Context, connectionString string) (*models.ConnectionStatus, error) {
	ret := _m.Called(ctx, connectionString)

	var r0 *models.ConnectionStatus
	if v, ok := ret.Get(0).(*models.ConnectionStatus); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockExplorerService) ListDatabases(ctx context.Context, connectionString string) ([]models.DatabaseInfo, error) {
	ret := _m.Called(ctx, connectionString)

	var r0 []models.DatabaseInfo
	if v, ok := ret.Get(0).([]models.DatabaseInfo); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockExplorerService) ListCollections(ctx context.Context, connectionString, database string) ([]models.CollectionInfo, error) {
	ret := _m.Called(ctx, connectionString, database)

	var r0 []models.CollectionInfo
	if v, ok := ret.Get(0).([]models.CollectionInfo); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockExplorerService) QueryDocuments(ctx context.Context, req models.QueryRequest) (*models.QueryResult, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.QueryResult
	if v, ok := ret.Get(0).(*models.QueryResult); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockExplorerService) SaveDocument(ctx context.Context, req models.SaveRequest) (serializer.Document, error) {
	ret := _m.Called(ctx, req)

	var r0 serializer.Document
	if v, ok := ret.Get(0).(serializer.Document); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// NewMockExplorerService creates a new instance of MockExplorerService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockExplorerService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExplorerService {
	m := &MockExplorerService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
