package mocks

import (
	"context"

	"github.com/haguru/mongolens/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockMongoSession is a mock type for the MongoSession type
type MockMongoSession struct {
	mock.Mock
}

func (_m *MockMongoSession) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockMongoSession) ListDatabases(ctx context.Context) ([]models.DatabaseInfo, error) {
	ret := _m.Called(ctx)

	var r0 []models.DatabaseInfo
	if v, ok := ret.Get(0).([]models.DatabaseInfo); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) ListCollections(ctx context.Context, database string) ([]models.CollectionInfo, error) {
	ret := _m.Called(ctx, database)

	var r0 []models.CollectionInfo
	if v, ok := ret.Get(0).([]models.CollectionInfo); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) CountDocuments(ctx context.Context, database, collection string, filter bson.D) (int64, error) {
	ret := _m.Called(ctx, database, collection, filter)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) EstimatedDocumentCount(ctx context.Context, database, collection string) (int64, error) {
	ret := _m.Called(ctx, database, collection)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) Find(ctx context.Context, database, collection string, filter bson.D, skip, limit int64) ([]bson.D, error) {
	ret := _m.Called(ctx, database, collection, filter, skip, limit)

	var r0 []bson.D
	if v, ok := ret.Get(0).([]bson.D); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) SampleFieldNames(ctx context.Context, database, collection string, size int) ([]string, error) {
	ret := _m.Called(ctx, database, collection, size)

	var r0 []string
	if v, ok := ret.Get(0).([]string); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) FindOneAndSet(ctx context.Context, database, collection string, id interface{}, fields bson.D) (bson.D, error) {
	ret := _m.Called(ctx, database, collection, id, fields)

	var r0 bson.D
	if v, ok := ret.Get(0).(bson.D); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

func (_m *MockMongoSession) Disconnect(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewMockMongoSession creates a new instance of MockMongoSession. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMongoSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMongoSession {
	m := &MockMongoSession{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
