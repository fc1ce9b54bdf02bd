package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/finance"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BalanceInvalidationHandler drops cached balance snapshots whenever a
// transaction is recorded or settled, so cached reads never survive a
// write to the account they summarize
type BalanceInvalidationHandler struct {
	cache  finance.BalanceCache
	logger *zap.Logger
}

// NewBalanceInvalidationHandler creates a new BalanceInvalidationHandler
func NewBalanceInvalidationHandler(cache finance.BalanceCache, logger *zap.Logger) *BalanceInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BalanceInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *BalanceInvalidationHandler) EventTypes() []string {
	return []string{"TransactionRecorded", "TransactionSettled"}
}

// Handle invalidates the snapshot of the account behind the event
func (h *BalanceInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var accountID uuid.UUID
	switch e := event.(type) {
	case *finance.TransactionRecordedEvent:
		accountID = e.AccountID
	case *finance.TransactionSettledEvent:
		accountID = e.AccountID
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	if err := h.cache.Invalidate(ctx, event.TenantID(), accountID); err != nil {
		h.logger.Warn("failed to invalidate balance snapshot",
			zap.String("account_id", accountID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("balance snapshot invalidated",
		zap.String("account_id", accountID.String()),
		zap.String("event_type", event.EventType()),
	)
	return nil
}
