package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/fieldops-io/fieldops-client/internal/transport"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// Store implements fieldops.ResourceClient for one resource, binding a
// resource name and REST base path to CRUD + list + upload operations that
// share one state bundle.
//
// opMu serializes operations: the second of two concurrent calls waits for
// the first to settle, so a stale response can never overwrite newer state.
// stateMu guards the state fields so accessors stay usable while an
// operation is in flight.
type Store[T fieldops.Entity] struct {
	transport *transport.Client
	resource  string
	basePath  string
	logger    fieldops.Logger

	opMu    sync.Mutex
	stateMu sync.RWMutex

	collection []T
	selected   *T
	pending    bool
	lastError  string
	pageInfo   *fieldops.PageInfo
}

// NewStore creates a resource store bound to one resource name and path.
func NewStore[T fieldops.Entity](tc *transport.Client, resource, basePath string, logger fieldops.Logger) *Store[T] {
	return &Store[T]{
		transport: tc,
		resource:  resource,
		basePath:  basePath,
		logger:    logger,
	}
}

// itemPayload and listPayload mirror the API's `{data, meta}` response shape.
type itemPayload[T any] struct {
	Data T `json:"data"`
}

type listPayload[T any] struct {
	Data []T                `json:"data"`
	Meta *fieldops.PageInfo `json:"meta,omitempty"`
}

// run is the operation envelope: it flips pending around exactly one
// operation, folds success into client state via onSuccess before returning,
// converts any failure into a display message, and logs both outcomes. It
// never returns a Go error. The caller must hold opMu.
func run[T fieldops.Entity, R any](s *Store[T], operation string, op func() (R, error), onSuccess func(R)) fieldops.Result[R] {
	s.begin()

	out, err := op()
	if err != nil {
		message := displayMessage(err, fallbackMessage(s.resource, operation))
		s.settleFailure(message)
		s.logOutcome(operation, "failure", message)

		return fieldops.Fail[R](message)
	}

	if onSuccess != nil {
		onSuccess(out)
	}

	s.settleSuccess()
	s.logOutcome(operation, "success", "")

	return fieldops.Ok(out)
}

// List fetches the resource collection, replacing Collection and PageInfo
// wholesale on success.
func (s *Store[T]) List(ctx context.Context, filters fieldops.Filters) fieldops.Result[[]T] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.list(ctx, filters)
}

// list requires opMu to be held.
func (s *Store[T]) list(ctx context.Context, filters fieldops.Filters) fieldops.Result[[]T] {
	var meta *fieldops.PageInfo

	return run(s, "list", func() ([]T, error) {
		resp, err := s.transport.Get(ctx, s.basePath, filters.Values())
		if err != nil {
			return nil, err
		}

		var payload listPayload[T]

		err = json.Unmarshal(resp.Body, &payload)
		if err != nil {
			return nil, fmt.Errorf("parsing %s list response: %w", s.resource, err)
		}

		meta = payload.Meta

		return payload.Data, nil
	}, func(items []T) {
		s.stateMu.Lock()
		s.collection = items
		s.pageInfo = meta
		s.stateMu.Unlock()
	})
}

// Get fetches a single entity and sets Selected on success.
func (s *Store[T]) Get(ctx context.Context, id string) fieldops.Result[T] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return run(s, "get", func() (T, error) {
		return s.fetchItem(ctx, s.entityPath(id))
	}, func(entity T) {
		s.stateMu.Lock()
		s.selected = &entity
		s.stateMu.Unlock()
	})
}

// Create posts a partial entity and, on success, re-fetches the list as the
// consistency mechanism. A create that succeeds server-side but whose
// refresh fails settles as a failure carrying the refresh error.
func (s *Store[T]) Create(ctx context.Context, attrs interface{}) fieldops.Result[T] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return run(s, "create", func() (T, error) {
		var zero T

		resp, err := s.transport.Post(ctx, s.basePath, attrs)
		if err != nil {
			return zero, err
		}

		entity, err := decodeItem[T](resp.Body, s.resource)
		if err != nil {
			return zero, err
		}

		err = s.refreshList(ctx)
		if err != nil {
			return zero, err
		}

		return entity, nil
	}, nil)
}

// Update puts a partial entity; on success it refreshes the list and sets
// Selected to the updated entity.
func (s *Store[T]) Update(ctx context.Context, id string, attrs interface{}) fieldops.Result[T] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return run(s, "update", func() (T, error) {
		var zero T

		resp, err := s.transport.Put(ctx, s.entityPath(id), attrs)
		if err != nil {
			return zero, err
		}

		entity, err := decodeItem[T](resp.Body, s.resource)
		if err != nil {
			return zero, err
		}

		err = s.refreshList(ctx)
		if err != nil {
			return zero, err
		}

		return entity, nil
	}, func(entity T) {
		s.stateMu.Lock()
		s.selected = &entity
		s.stateMu.Unlock()
	})
}

// Delete removes an entity; on success it refreshes the list and clears
// Selected iff the deleted ID matches it.
func (s *Store[T]) Delete(ctx context.Context, id string) fieldops.Result[struct{}] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return run(s, "delete", func() (struct{}, error) {
		_, err := s.transport.Delete(ctx, s.entityPath(id))
		if err != nil {
			return struct{}{}, err
		}

		err = s.refreshList(ctx)
		if err != nil {
			return struct{}{}, err
		}

		return struct{}{}, nil
	}, func(struct{}) {
		s.stateMu.Lock()
		if s.selected != nil && (*s.selected).EntityID() == id {
			s.selected = nil
		}
		s.stateMu.Unlock()
	})
}

// Upload posts a multipart form to the base path (create mode) or the entity
// path (update mode), refreshing the list on success. Update mode also sets
// Selected.
func (s *Store[T]) Upload(ctx context.Context, id string, form *fieldops.Form, mode fieldops.UploadMode) fieldops.Result[T] {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	path := s.basePath
	if mode == fieldops.UploadModeUpdate {
		path = s.entityPath(id)
	}

	return run(s, "upload", func() (T, error) {
		var zero T

		resp, err := s.transport.PostForm(ctx, path, form)
		if err != nil {
			return zero, err
		}

		entity, err := decodeItem[T](resp.Body, s.resource)
		if err != nil {
			return zero, err
		}

		err = s.refreshList(ctx)
		if err != nil {
			return zero, err
		}

		return entity, nil
	}, func(entity T) {
		if mode != fieldops.UploadModeUpdate {
			return
		}

		s.stateMu.Lock()
		s.selected = &entity
		s.stateMu.Unlock()
	})
}

// fetchItem GETs and decodes a single entity.
func (s *Store[T]) fetchItem(ctx context.Context, path string) (T, error) {
	var zero T

	resp, err := s.transport.Get(ctx, path, nil)
	if err != nil {
		return zero, err
	}

	return decodeItem[T](resp.Body, s.resource)
}

// refreshList re-fetches the full, unfiltered list and applies it to state.
// It runs inside a mutating operation's envelope, after the mutation has
// settled.
func (s *Store[T]) refreshList(ctx context.Context) error {
	resp, err := s.transport.Get(ctx, s.basePath, nil)
	if err != nil {
		return err
	}

	var payload listPayload[T]

	err = json.Unmarshal(resp.Body, &payload)
	if err != nil {
		return fmt.Errorf("parsing %s list response: %w", s.resource, err)
	}

	s.stateMu.Lock()
	s.collection = payload.Data
	s.pageInfo = payload.Meta
	s.stateMu.Unlock()

	return nil
}

// entityPath builds the single-entity path. IDs are percent-encoded so
// non-numeric identifiers are safe in URLs.
func (s *Store[T]) entityPath(id string) string {
	return s.basePath + "/" + url.PathEscape(id)
}

func decodeItem[T any](body []byte, resource string) (T, error) {
	var payload itemPayload[T]

	err := json.Unmarshal(body, &payload)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("parsing %s response: %w", resource, err)
	}

	return payload.Data, nil
}

// State accessors.

// Collection returns the most recently fetched list.
func (s *Store[T]) Collection() []T {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.collection
}

// Selected returns a copy of the currently selected entity, or nil.
func (s *Store[T]) Selected() *T {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.selected == nil {
		return nil
	}

	entity := *s.selected

	return &entity
}

// Pending reports whether an operation is in flight.
func (s *Store[T]) Pending() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.pending
}

// LastError returns the failure message of the most recently settled
// operation, or empty.
func (s *Store[T]) LastError() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.lastError
}

// PageInfo returns the pagination metadata of the most recent list fetch, or
// nil when the response carried none.
func (s *Store[T]) PageInfo() *fieldops.PageInfo {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	return s.pageInfo
}

// Envelope state transitions.

func (s *Store[T]) begin() {
	s.stateMu.Lock()
	s.pending = true
	s.lastError = ""
	s.stateMu.Unlock()
}

func (s *Store[T]) settleSuccess() {
	s.stateMu.Lock()
	s.pending = false
	s.stateMu.Unlock()
}

func (s *Store[T]) settleFailure(message string) {
	s.stateMu.Lock()
	s.pending = false
	s.lastError = message
	s.stateMu.Unlock()
}

func (s *Store[T]) logOutcome(operation, outcome, message string) {
	if s.logger == nil {
		return
	}

	fields := map[string]interface{}{
		"resource":  s.resource,
		"operation": operation,
		"outcome":   outcome,
	}

	if outcome == "failure" {
		fields["error"] = message
		s.logger.Error("operation settled", fields)

		return
	}

	s.logger.Debug("operation settled", fields)
}

// displayMessage derives the user-facing message for a failed operation, in
// detection order: the transport error's structured message, a message
// nested under the error body's meta, any error text, then the fixed
// fallback. The result is always safe to present directly.
func displayMessage(err error, fallback string) string {
	apiErr := &fieldops.APIError{}
	if errors.As(err, &apiErr) {
		if msg := apiErr.DisplayMessage(); msg != "" {
			return msg
		}

		// HTTP failure whose body carried no structured message: the
		// status line is not fit for display.
		return fallback
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return fallback
}

func fallbackMessage(resource, operation string) string {
	return fmt.Sprintf("%s %s failed, please try again", resource, operation)
}
