package planning

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/poloatt/attadia-backend/internal/domain/shared"
	"github.com/poloatt/attadia-backend/internal/domain/shared/valueobject"
)

// SectionItems maps a habit section (e.g. "bodyCare", "ejercicio") to the
// completion state of each item in it. Stored as JSONB.
type SectionItems map[string]map[string]bool

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s SectionItems) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *SectionItems) Scan(value interface{}) error {
	if value == nil {
		*s = SectionItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SectionItems: unsupported type")
	}

	return json.Unmarshal(bytes, s)
}

// HabitPreferences marks which habit items the user wants tracked,
// keyed the same way as SectionItems. Stored as JSONB.
type HabitPreferences map[string]map[string]bool

// Value implements driver.Valuer interface for GORM to store as JSONB
func (p HabitPreferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (p *HabitPreferences) Scan(value interface{}) error {
	if value == nil {
		*p = HabitPreferences{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan HabitPreferences: unsupported type")
	}

	return json.Unmarshal(bytes, p)
}

// Routine is one day's habit record for a user. There is at most one
// routine per user per calendar day; the repository enforces the
// uniqueness.
type Routine struct {
	shared.TenantAggregateRoot
	UserID   uuid.UUID    `json:"user_id"`
	Date     time.Time    `json:"date"`
	Sections SectionItems `json:"sections"`
}

// NewRoutine creates an empty routine for the given day
func NewRoutine(tenantID, userID uuid.UUID, date time.Time) (*Routine, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrMissingReference
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Routine date cannot be empty")
	}

	return &Routine{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Date:                valueobject.DateOnly(date),
		Sections:            SectionItems{},
	}, nil
}

// MarkItem records whether a habit item was done, creating the section on
// first use.
func (r *Routine) MarkItem(section, item string, done bool) error {
	if section == "" || item == "" {
		return shared.NewDomainError("INVALID_HABIT", "Section and item cannot be empty")
	}
	if r.Sections == nil {
		r.Sections = SectionItems{}
	}
	if r.Sections[section] == nil {
		r.Sections[section] = map[string]bool{}
	}
	r.Sections[section][item] = done
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// CompletionRate returns done/total over the tracked items, 0 when nothing
// is tracked.
func (r *Routine) CompletionRate() float64 {
	total, done := 0, 0
	for _, items := range r.Sections {
		for _, ok := range items {
			total++
			if ok {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
