package contract

import (
	"time"

	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// Status represents a contract lifecycle status
type Status string

const (
	StatusPlaneado      Status = "PLANEADO"      // Start date in the future
	StatusActivo        Status = "ACTIVO"        // Today within [start, end]
	StatusFinalizado    Status = "FINALIZADO"    // Past end date, or explicitly finalized
	StatusMantenimiento Status = "MANTENIMIENTO" // Maintenance contract, overrides date classification
	StatusSuspendido    Status = "SUSPENDIDO"    // Explicitly suspended
	StatusCancelado     Status = "CANCELADO"     // Explicitly cancelled
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPlaneado, StatusActivo, StatusFinalizado,
		StatusMantenimiento, StatusSuspendido, StatusCancelado:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the contract can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusFinalizado || s == StatusCancelado
}

// ResolveNaturalStatus derives the date-based status of a contract.
// It is a pure function of its inputs and safe to call on every read.
// Boundary days are inclusive: the start and end dates themselves count
// as ACTIVO. The maintenance flag wins over any date classification.
func ResolveNaturalStatus(today, startDate, endDate time.Time, isMaintenance bool) Status {
	if isMaintenance {
		return StatusMantenimiento
	}

	day := valueobject.DateOnly(today)
	start := valueobject.DateOnly(startDate)
	end := valueobject.DateOnly(endDate)

	switch {
	case day.Before(start):
		return StatusPlaneado
	case day.After(end):
		return StatusFinalizado
	default:
		return StatusActivo
	}
}

// StatusOverride records an explicit lifecycle transition layered on top
// of the natural date-derived status. The stored status field is never a
// second source of truth: either an override is present and wins, or the
// resolver's pure computation applies.
type StatusOverride struct {
	Status    Status    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
	AppliedBy string    `json:"applied_by,omitempty"`
}

// IsValidOverride returns true if the status may be used as an explicit
// override. Natural statuses other than FINALIZADO cannot be forced.
func (s Status) IsValidOverride() bool {
	return s == StatusFinalizado || s == StatusSuspendido || s == StatusCancelado
}
