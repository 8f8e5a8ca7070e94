package foclient

import (
	"fmt"
	"strings"

	"github.com/fieldops-io/fieldops-client/internal/client"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// New creates a new field-operations API client.
func New(config *fieldops.Config) (fieldops.Client, error) {
	if config == nil {
		return nil, fieldops.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, fieldops.ErrAPIEndpointRequired
	}

	// Normalize API endpoint
	endpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.APIEndpoint = endpoint

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithEndpoint creates a new client with just an API endpoint (no auth).
func NewWithEndpoint(endpoint string) (fieldops.Client, error) {
	return New(&fieldops.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and bearer token.
func NewWithToken(endpoint, token string) (fieldops.Client, error) {
	return New(&fieldops.Config{
		APIEndpoint: endpoint,
		Token:       token,
	})
}
