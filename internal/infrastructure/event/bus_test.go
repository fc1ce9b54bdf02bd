package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poloatt/attadia-backend/internal/domain/shared"
)

// recordedEvent is a minimal DomainEvent for bus tests
type recordedEvent struct {
	shared.BaseDomainEvent
}

func newRecordedEvent(eventType string, tenantID uuid.UUID) *recordedEvent {
	return &recordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Transaction", uuid.New(), tenantID),
	}
}

// captureHandler collects every event it receives
type captureHandler struct {
	mu         sync.Mutex
	eventTypes []string
	received   []shared.DomainEvent
	err        error
}

func newCaptureHandler(eventTypes ...string) *captureHandler {
	return &captureHandler{eventTypes: eventTypes}
}

func (h *captureHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, event)
	return h.err
}

func (h *captureHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *captureHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

// panicHandler panics on every event
type panicHandler struct{}

func (panicHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	panic("handler exploded")
}

func (panicHandler) EventTypes() []string { return nil }

func TestEventBusDeliversToSubscribedType(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	tenantID := uuid.New()

	handler := newCaptureHandler("TransactionRecorded")
	bus.Subscribe(handler, "TransactionRecorded")
	require.NoError(t, bus.Start(context.Background()))

	require.NoError(t, bus.Publish(context.Background(), newRecordedEvent("TransactionRecorded", tenantID)))
	require.NoError(t, bus.Publish(context.Background(), newRecordedEvent("ContractActivated", tenantID)))

	assert.Equal(t, 1, handler.count())
	assert.Equal(t, "TransactionRecorded", handler.received[0].EventType())
}

func TestEventBusUsesHandlerDeclaredTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	tenantID := uuid.New()

	// No explicit types on Subscribe, the handler's EventTypes() rules
	handler := newCaptureHandler("TransactionRecorded", "TransactionSettled")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newRecordedEvent("TransactionRecorded", tenantID),
		newRecordedEvent("TransactionSettled", tenantID),
		newRecordedEvent("UserRegistered", tenantID),
	))

	assert.Equal(t, 2, handler.count())
}

func TestEventBusHandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	tenantID := uuid.New()

	failing := newCaptureHandler("TransactionRecorded")
	failing.err = errors.New("cache unreachable")
	healthy := newCaptureHandler("TransactionRecorded")

	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newRecordedEvent("TransactionRecorded", tenantID)))

	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count())
}

func TestEventBusRecoversFromPanickingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	tenantID := uuid.New()

	healthy := newCaptureHandler("TransactionRecorded")
	bus.Subscribe(panicHandler{}, "TransactionRecorded")
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newRecordedEvent("TransactionRecorded", tenantID))
	})
	assert.Equal(t, 1, healthy.count())
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	tenantID := uuid.New()

	handler := newCaptureHandler("TransactionRecorded")
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newRecordedEvent("TransactionRecorded", tenantID)))
	assert.Equal(t, 0, handler.count())
}

func TestEventBusStartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))
}
