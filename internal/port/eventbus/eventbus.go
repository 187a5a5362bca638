package eventbus

import (
	"context"

	"github.com/alanyang/folio/internal/domain/event"
)

//go:generate mockgen -destination=../../mocks/eventbus.go -package=mocks -mock_names=EventBus=MockEventBus . EventBus

type Handler func(ctx context.Context, e event.Event)

type Subscription interface {
	Unsubscribe()
}

type EventBus interface {
	Publish(ctx context.Context, e event.Event) error
	Subscribe(ctx context.Context, ch event.Channel, handler Handler) (Subscription, error)
}
