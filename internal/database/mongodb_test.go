package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
)

func TestPolicyBoundsAndAttempts(t *testing.T) {
	r := Retry{Attempts: 5, Base: 100 * time.Millisecond, Max: time.Second}
	b := r.policy(context.Background())
	b.Reset()

	want := r.Base
	for n := 0; n < r.Attempts-1; n++ {
		d := b.NextBackOff()
		require.NotEqual(t, backoff.Stop, d, "retry %d", n+1)
		require.GreaterOrEqual(t, d, want/2)
		require.LessOrEqual(t, d, want+want/2)
		want *= 2
		if want > r.Max {
			want = r.Max
		}
	}
	require.Equal(t, backoff.Stop, b.NextBackOff(), "no waits beyond Attempts-1 retries")
}

func TestPolicyStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := Retry{Attempts: 5, Base: time.Millisecond, Max: time.Millisecond}.policy(ctx)
	require.Equal(t, backoff.Stop, b.NextBackOff())
}

func TestRetryDoSucceedsEventually(t *testing.T) {
	r := Retry{Attempts: 5, Base: time.Millisecond, Max: 2 * time.Millisecond}
	calls := 0
	err := r.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryDoGivesUp(t *testing.T) {
	r := Retry{Attempts: 4, Base: time.Millisecond, Max: time.Millisecond}
	boom := errors.New("boom")
	calls := 0
	err := r.Do(context.Background(), "op", func(context.Context) error { calls++; return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, 4, calls)
}

func TestRetryDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := Retry{Attempts: 5, Base: time.Hour, Max: time.Hour}
	calls := 0
	err := r.Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestConnectMongoWithRetryBadURI(t *testing.T) {
	r := Retry{Attempts: 2, Base: time.Millisecond, Max: time.Millisecond}
	_, err := ConnectMongoWithRetry(context.Background(), "not-a-uri", time.Second, r)
	require.Error(t, err)
}
