package sink

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("push sink unavailable")

// Sink delivers one data message to a topic.
type Sink interface {
	Send(ctx context.Context, topic string, data map[string]string, collapseKey string, ttlSeconds int) error
	// Available is false when the sink could not be configured; Send then always fails.
	Available() bool
}

type unavailableSink struct {
	reason string
}

func (u *unavailableSink) Available() bool { return false }

func (u *unavailableSink) Send(_ context.Context, _ string, _ map[string]string, _ string, _ int) error {
	return errors.Join(ErrUnavailable, errors.New(u.reason))
}
