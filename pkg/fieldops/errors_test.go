package fieldops_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{
			name:       "top-level message",
			statusCode: 404,
			body:       `{"message": "Outlet not found"}`,
			wantMsg:    "Outlet not found",
		},
		{
			name:       "message nested under meta",
			statusCode: 422,
			body:       `{"meta": {"message": "Name is required"}}`,
			wantMsg:    "Name is required",
		},
		{
			name:       "top-level message wins over meta",
			statusCode: 422,
			body:       `{"message": "top", "meta": {"message": "nested"}}`,
			wantMsg:    "top",
		},
		{
			name:       "empty body",
			statusCode: 500,
			body:       "",
			wantMsg:    "",
		},
		{
			name:       "non-JSON body",
			statusCode: 502,
			body:       "<html>Bad Gateway</html>",
			wantMsg:    "",
		},
		{
			name:       "meta message is not a string",
			statusCode: 422,
			body:       `{"meta": {"message": 42}}`,
			wantMsg:    "",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			apiErr := fieldops.ParseAPIError(testCase.statusCode, []byte(testCase.body))
			assert.Equal(t, testCase.statusCode, apiErr.StatusCode)
			assert.Equal(t, testCase.wantMsg, apiErr.DisplayMessage())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withMsg := &fieldops.APIError{StatusCode: 404, Message: "Outlet not found"}
	assert.Equal(t, "Outlet not found", withMsg.Error())

	bare := &fieldops.APIError{StatusCode: 500}
	assert.Equal(t, "request failed with status 500", bare.Error())
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	notFound := fieldops.ParseAPIError(404, nil)
	unauthorized := fieldops.ParseAPIError(401, nil)
	validation := fieldops.ParseAPIError(422, nil)

	assert.True(t, fieldops.IsNotFound(notFound))
	assert.False(t, fieldops.IsNotFound(unauthorized))

	assert.True(t, fieldops.IsUnauthorized(unauthorized))
	assert.False(t, fieldops.IsUnauthorized(validation))

	assert.True(t, fieldops.IsValidation(validation))
	assert.False(t, fieldops.IsValidation(notFound))

	// Classifiers unwrap.
	wrapped := fmt.Errorf("listing outlets: %w", notFound)
	assert.True(t, fieldops.IsNotFound(wrapped))

	// Non-API errors never match.
	assert.False(t, fieldops.IsNotFound(errors.New("boom")))
}
