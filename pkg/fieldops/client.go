package fieldops

import (
	"context"
	"time"
)

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenProvider supplies the current bearer token at call time. The client
// re-reads it for every request rather than caching it, so rotation by the
// provider takes effect immediately.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// ResourceClient is the uniform CRUD + list + upload surface bound to one
// resource path, sharing one client state bundle. Operations never return a
// Go error; failure is observable only through the Result's Success flag.
//
// Operations on one instance are serialized: a call made while another is in
// flight waits for it to settle, so state always reflects the most recently
// started operation. Every mutation re-fetches the list as its consistency
// mechanism rather than patching collection state locally.
type ResourceClient[T Entity] interface {
	List(ctx context.Context, filters Filters) Result[[]T]
	Get(ctx context.Context, id string) Result[T]
	Create(ctx context.Context, attrs interface{}) Result[T]
	Update(ctx context.Context, id string, attrs interface{}) Result[T]
	Delete(ctx context.Context, id string) Result[struct{}]
	Upload(ctx context.Context, id string, form *Form, mode UploadMode) Result[T]

	// State accessors. Collection reflects the most recent successful list
	// fetch; Selected the most recent single-item fetch (cleared when that
	// entity is deleted); PageInfo is nil until a list fetch returns
	// pagination metadata.
	Collection() []T
	Selected() *T
	Pending() bool
	LastError() string
	PageInfo() *PageInfo
}

// Per-resource client aliases.
type (
	OutletsClient       = ResourceClient[Outlet]
	UsersClient         = ResourceClient[User]
	VisitsClient        = ResourceClient[Visit]
	PlanVisitsClient    = ResourceClient[PlanVisit]
	NotificationsClient = ResourceClient[Notification]
)

// AuthClient provides the pre-authentication one-shot operations. No bearer
// token is attached and no list/item state is held; callers persist any
// returned credentials themselves.
type AuthClient interface {
	Login(ctx context.Context, username, password, deviceID string) Result[Session]
	RequestOTP(ctx context.Context, phone string) Result[OTPChallenge]
	VerifyOTP(ctx context.Context, phone, otp, deviceID string) Result[Session]
}

// Client provides access to all resource clients and the auth client.
type Client interface {
	Outlets() OutletsClient
	Users() UsersClient
	Visits() VisitsClient
	PlanVisits() PlanVisitsClient
	Notifications() NotificationsClient
	Auth() AuthClient
}

// Paths holds the per-resource REST paths, relative to the API endpoint.
// Zero values fall back to the server's defaults (e.g. "/outlets").
type Paths struct {
	Outlets       string
	Users         string
	Visits        string
	PlanVisits    string
	Notifications string
	Login         string
	RequestOTP    string
	VerifyOTP     string
}

// Config represents client configuration for building a fieldops.Client.
type Config struct {
	// APIEndpoint: base URL for the field-operations API
	// (e.g. "https://api.example.com"). foclient.New normalizes this value
	// by trimming a trailing slash and adding "https://" if no scheme is
	// present.
	APIEndpoint string

	// Token: static bearer token attached to every resource request.
	Token string

	// TokenProvider: takes precedence over Token when set; consulted on
	// every request.
	TokenProvider TokenProvider

	// Paths: per-resource path overrides.
	Paths Paths

	// NATSURL: broker URL for the live notification feed. Optional; the
	// REST notification resource works without it.
	NATSURL string

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool

	// Logger: optional structured logger used by the transport and the
	// operation envelope.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RetryMax/RetryWaitMin/RetryWaitMax tune transport-level retries for
	// transient failures. The default is 0: a started operation makes a
	// single attempt.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}
