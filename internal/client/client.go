// Package client implements the fieldops.Client interface: the generic
// resource store, the auth client, and the aggregate that binds them to one
// transport.
package client

import (
	"context"

	"github.com/fieldops-io/fieldops-client/internal/constants"
	"github.com/fieldops-io/fieldops-client/internal/transport"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// Client implements the fieldops.Client interface.
type Client struct {
	transport *transport.Client
	baseURL   string
	logger    fieldops.Logger

	outlets       *Store[fieldops.Outlet]
	users         *Store[fieldops.User]
	visits        *Store[fieldops.Visit]
	planVisits    *Store[fieldops.PlanVisit]
	notifications *Store[fieldops.Notification]
	auth          *AuthClient
}

// New creates a field-operations API client.
func New(config *fieldops.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, fieldops.ErrAPIEndpointRequired
	}

	tokens := createTokenProvider(config)
	opts := createTransportOptions(config)

	client := &Client{
		transport: transport.NewClient(config.APIEndpoint, tokens, opts...),
		baseURL:   config.APIEndpoint,
		logger:    config.Logger,
	}

	client.initializeResourceClients(config)

	return client, nil
}

// createTokenProvider picks the token source: an injected provider wins over
// a static token; with neither, requests go out unauthenticated.
func createTokenProvider(config *fieldops.Config) fieldops.TokenProvider {
	if config.TokenProvider != nil {
		return config.TokenProvider
	}

	if config.Token != "" {
		return &staticTokenProvider{token: config.Token}
	}

	return nil
}

// createTransportOptions builds transport options from config.
func createTransportOptions(config *fieldops.Config) []transport.Option {
	var opts []transport.Option

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, transport.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}

// initializeResourceClients binds every resource store and the auth client.
// Auth uses its own unauthenticated transport: those endpoints run pre-login.
func (c *Client) initializeResourceClients(config *fieldops.Config) {
	paths := config.Paths

	c.outlets = NewStore[fieldops.Outlet](c.transport, "outlets", pathOrDefault(paths.Outlets, constants.PathOutlets), c.logger)
	c.users = NewStore[fieldops.User](c.transport, "users", pathOrDefault(paths.Users, constants.PathUsers), c.logger)
	c.visits = NewStore[fieldops.Visit](c.transport, "visits", pathOrDefault(paths.Visits, constants.PathVisits), c.logger)
	c.planVisits = NewStore[fieldops.PlanVisit](c.transport, "plan-visits", pathOrDefault(paths.PlanVisits, constants.PathPlanVisits), c.logger)
	c.notifications = NewStore[fieldops.Notification](c.transport, "notifications", pathOrDefault(paths.Notifications, constants.PathNotifications), c.logger)

	authTransport := transport.NewClient(c.baseURL, nil, createTransportOptions(config)...)
	c.auth = NewAuthClient(authTransport, paths, c.logger)
}

// Outlets implements fieldops.Client.Outlets.
func (c *Client) Outlets() fieldops.OutletsClient {
	return c.outlets
}

// Users implements fieldops.Client.Users.
func (c *Client) Users() fieldops.UsersClient {
	return c.users
}

// Visits implements fieldops.Client.Visits.
func (c *Client) Visits() fieldops.VisitsClient {
	return c.visits
}

// PlanVisits implements fieldops.Client.PlanVisits.
func (c *Client) PlanVisits() fieldops.PlanVisitsClient {
	return c.planVisits
}

// Notifications implements fieldops.Client.Notifications.
func (c *Client) Notifications() fieldops.NotificationsClient {
	return c.notifications
}

// Auth implements fieldops.Client.Auth.
func (c *Client) Auth() fieldops.AuthClient {
	return c.auth
}

// staticTokenProvider supplies a fixed token.
type staticTokenProvider struct {
	token string
}

func (p *staticTokenProvider) Token(ctx context.Context) (string, error) {
	return p.token, nil
}
