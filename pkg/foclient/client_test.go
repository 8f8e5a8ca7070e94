package foclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
	"github.com/fieldops-io/fieldops-client/pkg/foclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := foclient.New(nil)
		require.ErrorIs(t, err, fieldops.ErrConfigRequired)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := foclient.New(&fieldops.Config{})
		require.ErrorIs(t, err, fieldops.ErrAPIEndpointRequired)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		client, err := foclient.New(&fieldops.Config{APIEndpoint: "https://api.example.com"})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestNew_EndpointNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		want     string
	}{
		{
			name:     "bare host gains https scheme",
			endpoint: "api.example.com",
			want:     "https://api.example.com",
		},
		{
			name:     "trailing slash is trimmed",
			endpoint: "https://api.example.com/",
			want:     "https://api.example.com",
		},
		{
			name:     "http scheme is preserved",
			endpoint: "http://localhost:8080",
			want:     "http://localhost:8080",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := &fieldops.Config{APIEndpoint: testCase.endpoint}

			_, err := foclient.New(config)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, config.APIEndpoint)
		})
	}
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer my-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client, err := foclient.NewWithToken(server.URL, "my-token")
	require.NoError(t, err)

	result := client.Outlets().List(context.Background(), nil)
	require.True(t, result.Success)
}

func TestNewWithEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client, err := foclient.NewWithEndpoint(server.URL)
	require.NoError(t, err)

	result := client.Outlets().List(context.Background(), nil)
	require.True(t, result.Success)
}
