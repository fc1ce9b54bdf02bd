package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryTypedSubscription(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newCaptureHandler()

	registry.Register(handler, "TransactionRecorded", "TransactionSettled")

	assert.Len(t, registry.GetHandlers("TransactionRecorded"), 1)
	assert.Len(t, registry.GetHandlers("TransactionSettled"), 1)
	assert.Empty(t, registry.GetHandlers("ContractActivated"))
}

func TestRegistryWildcardReceivesEverything(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newCaptureHandler()

	registry.Register(wildcard)

	assert.Len(t, registry.GetHandlers("TransactionRecorded"), 1)
	assert.Len(t, registry.GetHandlers("AnythingAtAll"), 1)
}

func TestRegistryCombinesTypedAndWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := newCaptureHandler()
	wildcard := newCaptureHandler()

	registry.Register(typed, "ContractActivated")
	registry.Register(wildcard)

	assert.Len(t, registry.GetHandlers("ContractActivated"), 2)
	assert.Len(t, registry.GetHandlers("UserRegistered"), 1)
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewHandlerRegistry()
	first := newCaptureHandler()
	second := newCaptureHandler()

	registry.Register(first, "ContractActivated")
	registry.Register(second, "ContractActivated")
	registry.Register(first)

	registry.Unregister(first)

	handlers := registry.GetHandlers("ContractActivated")
	assert.Len(t, handlers, 1)
	assert.Same(t, second, handlers[0].(*captureHandler))
}

func TestRegistryGetAllHandlersDeduplicates(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newCaptureHandler()
	other := newCaptureHandler()

	registry.Register(handler, "TransactionRecorded", "TransactionSettled")
	registry.Register(other)

	assert.Len(t, registry.GetAllHandlers(), 2)
}
