package verify

import (
	"context"
	"errors"
	"testing"

	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name   string
	accept string
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Verify(_ context.Context, raw string) (*models.Caller, error) {
	s.calls++
	if raw != s.accept {
		return nil, errors.New("bad token")
	}
	return &models.Caller{UID: s.name + "-user", Source: s.name}, nil
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (r stubRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], r.err
}

func TestChainFirstAcceptingSourceWins(t *testing.T) {
	a := &stubSource{name: "firebase", accept: "fb-token"}
	b := &stubSource{name: "dev", accept: "dev-token"}
	c := NewChain(nil, a, b)

	got := c.VerifyToken(context.Background(), "fb-token")
	require.NotNil(t, got)
	require.Equal(t, "firebase-user", got.UID)
	require.Equal(t, 0, b.calls, "later sources are not consulted once one accepts")

	got = c.VerifyToken(context.Background(), "dev-token")
	require.NotNil(t, got)
	require.Equal(t, "dev", got.Source)
	require.Equal(t, []string{"firebase", "dev"}, c.Sources())
}

func TestChainRejects(t *testing.T) {
	src := &stubSource{name: "oidc", accept: "ok"}
	c := NewChain(nil, src)

	before := testutil.ToFloat64(metrics.TokenVerifications.WithLabelValues("oidc", "rejected"))
	require.Nil(t, c.VerifyToken(context.Background(), "nope"))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.TokenVerifications.WithLabelValues("oidc", "rejected"))-before)

	require.Nil(t, c.VerifyToken(context.Background(), ""))
	require.Equal(t, 1, src.calls, "empty tokens never reach a source")
}

func TestChainWithoutSources(t *testing.T) {
	require.Nil(t, NewChain(nil).VerifyToken(context.Background(), "anything"))
}

func TestChainRevokedToken(t *testing.T) {
	src := &stubSource{name: "dev", accept: "t1"}
	c := NewChain(stubRevocations{revoked: map[string]bool{"t1": true}}, src)
	require.Nil(t, c.VerifyToken(context.Background(), "t1"))
}

func TestChainRevocationErrorFailsClosed(t *testing.T) {
	src := &stubSource{name: "dev", accept: "t1"}
	c := NewChain(stubRevocations{err: errors.New("redis down")}, src)
	require.Nil(t, c.VerifyToken(context.Background(), "t1"))
}
