package mocks

import (
	"context"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockSessionProvider is a mock type for the SessionProvider type
type MockSessionProvider struct {
	mock.Mock
}

func (_m *MockSessionProvider) Session(ctx context.Context, connectionString string) (interfaces.MongoSession, error) {
	ret := _m.Called(ctx, connectionString)

	var r0 interfaces.MongoSession
	if v, ok := ret.Get(0).(interfaces.MongoSession); ok {
		r0 = v
	}
	return r0, ret.Error(1)
}

// NewMockSessionProvider creates a new instance of MockSessionProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockSessionProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionProvider {
	m := &MockSessionProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
