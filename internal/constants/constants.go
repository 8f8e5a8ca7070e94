package constants

import "time"

// Client identification.
const (
	// ClientVersion is the client-version marker sent with login payloads.
	ClientVersion = "2.4.0"

	// DefaultUserAgent is sent when the config does not override it.
	DefaultUserAgent = "fieldops-client/" + ClientVersion
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The resource layer runs a single attempt; these apply only
// when a caller opts in to transport retries.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination and buffers.
const (
	// StandardPageSize is the default page size requested by the CLI.
	StandardPageSize = 50

	// FeedBufferSize is the channel buffer for the notification feed.
	FeedBufferSize = 100
)

// Default resource paths, relative to the API endpoint.
const (
	PathOutlets       = "/outlets"
	PathUsers         = "/users"
	PathVisits        = "/visits"
	PathPlanVisits    = "/planvisit"
	PathNotifications = "/notifications"
	PathLogin         = "/auth/login"
	PathRequestOTP    = "/auth/otp/request"
	PathVerifyOTP     = "/auth/otp/verify"
)

// NotificationSubjectPrefix is the NATS subject prefix for the live
// notification feed; the per-user subject is prefix + user ID.
const NotificationSubjectPrefix = "fieldops.notifications."

// JSONIndentSize is used by CLI YAML/JSON encoders.
const JSONIndentSize = 2
