// Package notify delivers live push notifications over NATS. It complements
// the REST notifications resource: the server publishes each user's
// notifications to a per-user subject, and a Feed relays them to a channel
// until closed.
package notify

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/fieldops-io/fieldops-client/internal/constants"
	"github.com/fieldops-io/fieldops-client/pkg/fieldops"
)

// Feed is a live notification subscription for one user.
type Feed struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	ch     chan fieldops.Notification
	logger fieldops.Logger

	closeOnce sync.Once
}

// Subscribe connects to the broker and subscribes to the user's notification
// subject. The returned feed must be closed when no longer needed.
func Subscribe(url, userID string, logger fieldops.Logger) (*Feed, error) {
	if url == "" {
		return nil, fieldops.ErrFeedURLRequired
	}

	if userID == "" {
		return nil, fieldops.ErrFeedUserRequired
	}

	conn, err := nats.Connect(url, nats.Name("fieldops-client"))
	if err != nil {
		return nil, fmt.Errorf("connecting to notification broker: %w", err)
	}

	feed := &Feed{
		conn:   conn,
		ch:     make(chan fieldops.Notification, constants.FeedBufferSize),
		logger: logger,
	}

	subject := constants.NotificationSubjectPrefix + userID

	sub, err := conn.Subscribe(subject, feed.handleMessage)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	feed.sub = sub

	return feed, nil
}

// handleMessage decodes one published notification. Undecodable payloads are
// logged and dropped; a full buffer drops the message rather than blocking
// the subscription callback.
func (f *Feed) handleMessage(msg *nats.Msg) {
	var notification fieldops.Notification

	err := json.Unmarshal(msg.Data, &notification)
	if err != nil {
		if f.logger != nil {
			f.logger.Warn("dropping undecodable notification", map[string]interface{}{
				"subject": msg.Subject,
				"error":   err.Error(),
			})
		}

		return
	}

	select {
	case f.ch <- notification:
	default:
		if f.logger != nil {
			f.logger.Warn("notification feed buffer full, dropping message", map[string]interface{}{
				"subject": msg.Subject,
			})
		}
	}
}

// Notifications returns the delivery channel. It is closed by Close.
func (f *Feed) Notifications() <-chan fieldops.Notification {
	return f.ch
}

// Close unsubscribes, drains the connection, and closes the delivery
// channel. Safe to call more than once.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		if f.sub != nil {
			_ = f.sub.Unsubscribe()
		}

		f.conn.Close()
		close(f.ch)
	})
}
