package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/firetemplate/items-api/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Retry bounds startup connection attempts.
type Retry struct {
	Attempts int
	Base     time.Duration
	Max      time.Duration
}

// DefaultRetry is used by the API at startup.
var DefaultRetry = Retry{Attempts: 5, Base: 500 * time.Millisecond, Max: 8 * time.Second}

// policy is exponential from Base, capped at Max, with +/-50% jitter, and
// allows Attempts-1 retries after the first call.
func (r Retry) policy(ctx context.Context) backoff.BackOff {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.Base
	eb.MaxInterval = r.Max
	eb.RandomizationFactor = 0.5
	eb.Multiplier = 2
	eb.MaxElapsedTime = 0
	eb.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)
}

// Do calls fn until it succeeds, the attempts run out or ctx is done.
func (r Retry) Do(ctx context.Context, what string, fn func(context.Context) error) error {
	attempt := 0
	op := func() error {
		attempt++
		return fn(ctx)
	}
	notify := func(err error, wait time.Duration) {
		logger.Warnf("%s failed (attempt %d/%d): %v; retrying in %s", what, attempt, r.Attempts, err, wait)
	}
	if err := backoff.RetryNotify(op, r.policy(ctx), notify); err != nil {
		return fmt.Errorf("%s: giving up after %d attempts: %w", what, attempt, err)
	}
	return nil
}

// ConnectMongoWithRetry wraps ConnectMongo in r.
func ConnectMongoWithRetry(ctx context.Context, uri string, timeout time.Duration, r Retry) (*mongo.Client, error) {
	var client *mongo.Client
	err := r.Do(ctx, "mongo connect", func(ctx context.Context) error {
		c, err := ConnectMongo(ctx, uri, timeout)
		if err != nil {
			return err
		}
		client = c
		return nil
	})
	return client, err
}
