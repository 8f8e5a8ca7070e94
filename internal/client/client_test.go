package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

func TestNew(t *testing.T) {
	t.Run("requires API endpoint", func(t *testing.T) {
		_, err := New(&fieldops.Config{})
		require.ErrorIs(t, err, fieldops.ErrAPIEndpointRequired)
	})

	t.Run("initializes all resource clients", func(t *testing.T) {
		client, err := New(&fieldops.Config{APIEndpoint: "https://api.example.com"})
		require.NoError(t, err)

		assert.NotNil(t, client.Outlets())
		assert.NotNil(t, client.Users())
		assert.NotNil(t, client.Visits())
		assert.NotNil(t, client.PlanVisits())
		assert.NotNil(t, client.Notifications())
		assert.NotNil(t, client.Auth())
	})
}

func TestClient_StaticToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer static-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client, err := New(&fieldops.Config{APIEndpoint: server.URL, Token: "static-token"})
	require.NoError(t, err)

	result := client.Outlets().List(context.Background(), nil)
	require.True(t, result.Success)
}

// rotatingTokenProvider returns a different token on each call.
type rotatingTokenProvider struct {
	tokens []string
	calls  int
}

func (p *rotatingTokenProvider) Token(ctx context.Context) (string, error) {
	token := p.tokens[p.calls%len(p.tokens)]
	p.calls++

	return token, nil
}

func TestClient_TokenProviderPrecedence(t *testing.T) {
	var seen []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	provider := &rotatingTokenProvider{tokens: []string{"first", "second"}}

	client, err := New(&fieldops.Config{
		APIEndpoint:   server.URL,
		Token:         "ignored-static-token",
		TokenProvider: provider,
	})
	require.NoError(t, err)

	require.True(t, client.Outlets().List(context.Background(), nil).Success)
	require.True(t, client.Outlets().List(context.Background(), nil).Success)

	// The provider wins over the static token and is consulted per request.
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestClient_PathOverrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/stores", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client, err := New(&fieldops.Config{
		APIEndpoint: server.URL,
		Paths:       fieldops.Paths{Outlets: "/api/v2/stores"},
	})
	require.NoError(t, err)

	result := client.Outlets().List(context.Background(), nil)
	require.True(t, result.Success)
}

func TestClient_IndependentStoreState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/outlets":
			_, _ = w.Write([]byte(`{"data": [{"id": "1", "name": "A"}]}`))
		case "/visits":
			_, _ = w.Write([]byte(`{"data": []}`))
		}
	}))
	defer server.Close()

	client, err := New(&fieldops.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	require.True(t, client.Outlets().List(context.Background(), nil).Success)
	require.True(t, client.Visits().List(context.Background(), nil).Success)

	assert.Len(t, client.Outlets().Collection(), 1)
	assert.Empty(t, client.Visits().Collection())
}
