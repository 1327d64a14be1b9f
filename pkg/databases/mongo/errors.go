package mongo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/helper"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/auth"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

var (
	ErrEmptyURI        = errors.New(EmptyURIErrMsg)
	ErrInvalidScheme   = errors.New(InvalidSchemeErrMsg)
	ErrLocalhostDenied = errors.New(LocalhostDeniedMsg)
	ErrPoolClosed      = errors.New(PoolClosedErrMsg)
	localHostnames     = map[string]bool{"localhost": true, "127.0.0.1": true, "::1": true, "0.0.0.0": true}
)

// ValidateURI rejects connection strings the driver should never see.
func ValidateURI(uri string, denyLocalhost bool) error {
	if strings.TrimSpace(uri) == "" {
		return models.NewConnectionError(models.ReasonInvalidURI, ErrEmptyURI)
	}
	if !strings.HasPrefix(uri, SchemeStandard) && !strings.HasPrefix(uri, SchemeSRV) {
		return models.NewConnectionError(models.ReasonInvalidURI, ErrInvalidScheme)
	}
	if denyLocalhost {
		for _, host := range helper.Hosts(uri) {
			if localHostnames[host] || strings.HasPrefix(host, "127.") {
				return models.NewConnectionError(models.ReasonInvalidURI, ErrLocalhostDenied)
			}
		}
	}
	return nil
}

// classifyConnectError maps a driver failure during connect or the first
// ping onto the connection reason shown to the user.
func classifyConnectError(err error) *models.Error {
	var modelErr *models.Error
	if errors.As(err, &modelErr) {
		return modelErr
	}

	return models.NewConnectionError(connectReason(err), err)
}

func connectReason(err error) models.ConnectionReason {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return models.ReasonAuthentication
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == authFailedCode {
		return models.ReasonAuthentication
	}

	if strings.Contains(strings.ToLower(err.Error()), authFailedMessage) {
		return models.ReasonAuthentication
	}

	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) || mongo.IsTimeout(err) {
		return models.ReasonUnreachable
	}

	return models.ReasonNetwork
}

// operationError wraps failures on an established session.
func operationError(msg string, err error) error {
	if mongo.IsNetworkError(err) {
		return models.NewConnectionError(models.ReasonNetwork, fmt.Errorf("%s: %w", msg, err))
	}
	return models.NewOperationError(msg, err)
}
