package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var calls []string
	d.Subscribe(EventPaymentRecorded, func(context.Context, Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventPaymentRecorded, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		assert.Equal(t, "admin-1", e.Actor.ID)
		return nil
	})
	d.Subscribe(EventCampaignAssigned, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), New(EventPaymentRecorded, Actor{ID: "admin-1"}, PaymentRecordedPayload{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventCampaignAssigned, Actor{}, nil)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}
