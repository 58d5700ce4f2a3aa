package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/movienight/internal/queue"
)

// ActivityPublisher receives a notification after each committed event
// mutation.  *queue.Publisher implements it.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, ev queue.ActivityEvent) error
}

// NopPublisher drops every notification.
type NopPublisher struct{}

func (NopPublisher) PublishActivity(context.Context, queue.ActivityEvent) error { return nil }

var publishTimeout = 2 * time.Second

// notify publishes ev best effort.  The request has already succeeded, so
// failures are only logged and the caller's cancellation is ignored.
func notify(ctx context.Context, pub ActivityPublisher, ev queue.ActivityEvent) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.PublishActivity(ctx, ev); err != nil {
		log.Printf("activity: publish %s for event %d failed: %v", ev.RoutingKey(), ev.EventID, err)
	}
}

// utcNow is the default clock.  Microsecond precision matches DATETIME(6).
func utcNow() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
