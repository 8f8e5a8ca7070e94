package client

import (
	"context"

	"github.com/fieldops-io/fieldops-client/internal/constants"
	"github.com/fieldops-io/fieldops-client/internal/transport"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// AuthClient implements fieldops.AuthClient. It reuses the operation
// envelope's result shape but holds no list/item state; each call is an
// independent one-shot against a fixed endpoint, sent without a bearer token.
type AuthClient struct {
	transport *transport.Client
	logger    fieldops.Logger

	loginPath      string
	requestOTPPath string
	verifyOTPPath  string
}

// NewAuthClient creates an auth client. The transport must be
// unauthenticated (nil token provider): these operations run pre-login.
func NewAuthClient(tc *transport.Client, paths fieldops.Paths, logger fieldops.Logger) *AuthClient {
	return &AuthClient{
		transport:      tc,
		logger:         logger,
		loginPath:      pathOrDefault(paths.Login, constants.PathLogin),
		requestOTPPath: pathOrDefault(paths.RequestOTP, constants.PathRequestOTP),
		verifyOTPPath:  pathOrDefault(paths.VerifyOTP, constants.PathVerifyOTP),
	}
}

// loginRequest carries the client-version marker alongside credentials.
type loginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	NotificationID string `json:"notification_id,omitempty"`
	AppVersion     string `json:"app_version"`
}

type requestOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone          string `json:"phone"`
	OTP            string `json:"otp"`
	NotificationID string `json:"notification_id,omitempty"`
}

// Login authenticates with username and password. The returned session
// token is not retained by the client.
func (a *AuthClient) Login(ctx context.Context, username, password, deviceID string) fieldops.Result[fieldops.Session] {
	return runAuth(a, "login", func() (fieldops.Session, error) {
		return postAuth[fieldops.Session](ctx, a, a.loginPath, loginRequest{
			Username:       username,
			Password:       password,
			NotificationID: deviceID,
			AppVersion:     constants.ClientVersion,
		})
	})
}

// RequestOTP asks the server to send a one-time password to a phone number.
func (a *AuthClient) RequestOTP(ctx context.Context, phone string) fieldops.Result[fieldops.OTPChallenge] {
	return runAuth(a, "request_otp", func() (fieldops.OTPChallenge, error) {
		return postAuth[fieldops.OTPChallenge](ctx, a, a.requestOTPPath, requestOTPRequest{Phone: phone})
	})
}

// VerifyOTP exchanges a received one-time password for a session.
func (a *AuthClient) VerifyOTP(ctx context.Context, phone, otp, deviceID string) fieldops.Result[fieldops.Session] {
	return runAuth(a, "verify_otp", func() (fieldops.Session, error) {
		return postAuth[fieldops.Session](ctx, a, a.verifyOTPPath, verifyOTPRequest{
			Phone:          phone,
			OTP:            otp,
			NotificationID: deviceID,
		})
	})
}

// runAuth is the state-light envelope: same result conversion and outcome
// logging as the resource stores, without pending/lastError bookkeeping.
func runAuth[R any](a *AuthClient, operation string, op func() (R, error)) fieldops.Result[R] {
	out, err := op()
	if err != nil {
		message := displayMessage(err, fallbackMessage("auth", operation))
		a.logOutcome(operation, "failure", message)

		return fieldops.Fail[R](message)
	}

	a.logOutcome(operation, "success", "")

	return fieldops.Ok(out)
}

func postAuth[R any](ctx context.Context, a *AuthClient, path string, body interface{}) (R, error) {
	var zero R

	resp, err := a.transport.Post(ctx, path, body)
	if err != nil {
		return zero, err
	}

	return decodeItem[R](resp.Body, "auth")
}

func (a *AuthClient) logOutcome(operation, outcome, message string) {
	if a.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"resource":  "auth",
		"operation": operation,
		"outcome":   outcome,
	}

	if outcome == "failure" {
		fields["error"] = message
		a.logger.Error("operation settled", fields)

		return
	}

	a.logger.Debug("operation settled", fields)
}

func pathOrDefault(path, fallback string) string {
	if path != "" {
		return path
	}

	return fallback
}
