package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fieldops-io/fieldops-client/internal/constants"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
	"github.com/fieldops-io/fieldops-client/pkg/foclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required (use --api or set FIELDOPS_API)")
	ErrBrokerURLRequired   = errors.New("notification broker URL is required (use --nats-url or set FIELDOPS_NATS_URL)")
	ErrUserRequired        = errors.New("user ID is required")
)

// CreateClient builds a client from the CLI configuration.
func CreateClient() (fieldops.Client, error) {
	api := viper.GetString("api")
	if api == "" {
		return nil, ErrAPIEndpointRequired
	}

	config := &fieldops.Config{
		APIEndpoint: api,
		Token:       viper.GetString("token"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = NewStderrLogger()
	}

	return foclient.New(config)
}

// Unwrap converts a failed operation result into a CLI error.
func Unwrap[T any](res fieldops.Result[T]) (T, error) {
	if !res.Success {
		var zero T

		return zero, errors.New(res.Error)
	}

	return res.Data, nil
}

// OutputJSON writes v to stdout as indented JSON.
func OutputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as JSON: %w", err)
	}

	return nil
}

// OutputYAML writes v to stdout as YAML.
func OutputYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode as YAML: %w", err)
	}

	return nil
}

// PrintPageInfo renders the pagination footer after a table.
func PrintPageInfo(info *fieldops.PageInfo) {
	if info == nil {
		return
	}

	fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d total)\n", info.CurrentPage, info.LastPage, info.Total)
}

// StderrLogger is the verbose-mode logger.
type StderrLogger struct{}

// NewStderrLogger creates a logger writing structured lines to stderr.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{}
}

func (l *StderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l *StderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *StderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *StderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *StderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

// attrsFromFlags builds a partial-entity payload, dropping flags the caller
// did not set so server-side values are left untouched.
func attrsFromFlags(values map[string]string) map[string]interface{} {
	attrs := map[string]interface{}{}

	for key, value := range values {
		if value != "" {
			attrs[key] = value
		}
	}

	return attrs
}
