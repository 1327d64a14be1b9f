package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/haguru/mongolens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

func TestValidateURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		denyLocalhost bool
		wantErr       error
	}{
		{"standard scheme", "mongodb://user:pw@db.example.com:27017/app", false, nil},
		{"srv scheme", "mongodb+srv://cluster0.example.net", false, nil},
		{"empty", "  ", false, ErrEmptyURI},
		{"wrong scheme", "postgres://db.example.com", false, ErrInvalidScheme},
		{"no scheme", "db.example.com:27017", false, ErrInvalidScheme},
		{"localhost allowed", "mongodb://localhost:27017", false, nil},
		{"localhost denied", "mongodb://localhost:27017", true, ErrLocalhostDenied},
		{"loopback in seed list denied", "mongodb://db.example.com,127.0.0.2:27018", true, ErrLocalhostDenied},
		{"ipv6 loopback denied", "mongodb://[::1]:27017", true, ErrLocalhostDenied},
		{"remote with deny", "mongodb://db.example.com", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURI(tt.uri, tt.denyLocalhost)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, models.ReasonInvalidURI, models.ReasonOf(err))
			assert.Contains(t, err.Error(), models.MsgConnectionFailed)
		})
	}
}

func TestClassifyConnectError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ConnectionReason
	}{
		{"auth command error", mongo.CommandError{Code: authFailedCode, Message: "bad auth"}, models.ReasonAuthentication},
		{"auth message", errors.New("connection() error: Authentication failed."), models.ReasonAuthentication},
		{"server selection", topology.ServerSelectionError{Wrapped: errors.New("no reachable servers")}, models.ReasonUnreachable},
		{"deadline", fmt.Errorf("ping: %w", context.DeadlineExceeded), models.ReasonUnreachable},
		{"other", errors.New("connection reset by peer"), models.ReasonNetwork},
		{"already classified", models.NewConnectionError(models.ReasonInvalidURI, errors.New("bad option")), models.ReasonInvalidURI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyConnectError(tt.err)
			assert.Equal(t, models.ErrKindConnection, got.Kind)
			assert.Equal(t, tt.want, got.Reason)
		})
	}
}

func TestOperationError(t *testing.T) {
	netErr := mongo.CommandError{Code: 6, Message: "host unreachable", Labels: []string{"NetworkError"}}
	err := operationError(FindErrMsg, netErr)
	assert.Equal(t, models.ErrKindConnection, models.KindOf(err))
	var cmdErr mongo.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, int32(6), cmdErr.Code)

	err = operationError(FindErrMsg, mongo.CommandError{Code: 2, Message: "unknown operator: $foo"})
	assert.Equal(t, models.ErrKindOperation, models.KindOf(err))
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestSampleKeysPipeline(t *testing.T) {
	pipeline := sampleKeysPipeline(500)
	require.Len(t, pipeline, 4)
	assert.Equal(t, "$sample", pipeline[0][0].Key)
	assert.Equal(t, "$group", pipeline[3][0].Key)
}
