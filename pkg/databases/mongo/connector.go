package mongo

import (
	"context"
	"time"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/haguru/mongolens/internal/models"
	"github.com/haguru/mongolens/pkg/helper"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DriverConnector opens driver clients and proves them with a ping before
// handing them out.
type DriverConnector struct {
	ServerOpts     *options.ServerAPIOptions
	appName        string
	connectTimeout time.Duration
	maxPoolSize    uint64
	denyLocalhost  bool
	logger         interfaces.Logger
}

var _ interfaces.Connector = (*DriverConnector)(nil)

// NewDriverConnector returns a connector configured from the pool settings.
func NewDriverConnector(cfg *config.PoolConfig, appName string, logger interfaces.Logger) *DriverConnector {
	maxPoolSize := cfg.MaxDriverPoolSize
	if maxPoolSize == 0 {
		maxPoolSize = MAXPOOLSIZE
	}

	return &DriverConnector{
		ServerOpts:     config.BuildServerAPIOptions(cfg.Options),
		appName:        appName,
		connectTimeout: cfg.ConnectTimeout,
		maxPoolSize:    maxPoolSize,
		denyLocalhost:  cfg.DenyLocalhost,
		logger:         logger,
	}
}

// Connect validates uri, connects and pings. A client whose ping fails is
// disconnected before the error is returned.
func (d *DriverConnector) Connect(ctx context.Context, uri string) (interfaces.MongoSession, error) {
	if err := ValidateURI(uri, d.denyLocalhost); err != nil {
		return nil, err
	}

	clientOptions, err := d.clientOptions(uri)
	if err != nil {
		return nil, err
	}

	if d.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.connectTimeout)
		defer cancel()
	}

	d.logger.Debug("Connecting to MongoDB", "client", helper.Fingerprint(uri), "uri", helper.RedactURI(uri))

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, classifyConnectError(err)
	}

	session := NewClient(client)
	if err := session.Ping(ctx); err != nil {
		if discErr := client.Disconnect(context.WithoutCancel(ctx)); discErr != nil {
			d.logger.Warn("Failed to disconnect after ping failure", "client", helper.Fingerprint(uri), "error", discErr)
		}
		return nil, classifyConnectError(err)
	}

	return session, nil
}

func (d *DriverConnector) clientOptions(uri string) (*options.ClientOptions, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if err := clientOptions.Validate(); err != nil {
		return nil, models.NewConnectionError(models.ReasonInvalidURI, err)
	}

	if d.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(d.ServerOpts)
	}
	if d.appName != "" && clientOptions.AppName == nil {
		clientOptions.SetAppName(d.appName)
	}
	if d.connectTimeout > 0 {
		clientOptions.SetConnectTimeout(d.connectTimeout)
		clientOptions.SetServerSelectionTimeout(d.connectTimeout)
	}
	clientOptions.SetMaxPoolSize(d.maxPoolSize)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())

	return clientOptions, nil
}
