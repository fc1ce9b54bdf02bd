package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPlaneado, true},
		{StatusActivo, true},
		{StatusFinalizado, true},
		{StatusMantenimiento, true},
		{StatusSuspendido, true},
		{StatusCancelado, true},
		{Status("INVALID"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusFinalizado.IsTerminal())
	assert.True(t, StatusCancelado.IsTerminal())
	assert.False(t, StatusActivo.IsTerminal())
	assert.False(t, StatusSuspendido.IsTerminal())
	assert.False(t, StatusPlaneado.IsTerminal())
}

func TestStatus_IsValidOverride(t *testing.T) {
	assert.True(t, StatusFinalizado.IsValidOverride())
	assert.True(t, StatusSuspendido.IsValidOverride())
	assert.True(t, StatusCancelado.IsValidOverride())
	assert.False(t, StatusActivo.IsValidOverride())
	assert.False(t, StatusPlaneado.IsValidOverride())
	assert.False(t, StatusMantenimiento.IsValidOverride())
}

func TestResolveNaturalStatus(t *testing.T) {
	start := date(2024, time.February, 1)
	end := date(2024, time.July, 31)

	tests := []struct {
		name     string
		today    time.Time
		expected Status
	}{
		{"before start", date(2024, time.January, 31), StatusPlaneado},
		{"on start date", start, StatusActivo},
		{"mid period", date(2024, time.May, 10), StatusActivo},
		{"on end date", end, StatusActivo},
		{"after end", date(2024, time.August, 1), StatusFinalizado},
		{"well before", date(2023, time.December, 25), StatusPlaneado},
		{"well after", date(2025, time.January, 1), StatusFinalizado},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveNaturalStatus(tt.today, start, end, false))
		})
	}
}

func TestResolveNaturalStatus_TimeOfDayIgnored(t *testing.T) {
	start := date(2024, time.February, 1)
	end := date(2024, time.July, 31)

	// 23:59 on the end date still counts as ACTIVO
	lateOnEnd := time.Date(2024, time.July, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, StatusActivo, ResolveNaturalStatus(lateOnEnd, start, end, false))

	// 00:01 on the start date counts as ACTIVO
	earlyOnStart := time.Date(2024, time.February, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, StatusActivo, ResolveNaturalStatus(earlyOnStart, start, end, false))
}

func TestResolveNaturalStatus_MaintenanceOverridesDates(t *testing.T) {
	start := date(2024, time.February, 1)
	end := date(2024, time.July, 31)

	for _, today := range []time.Time{
		date(2024, time.January, 1),
		date(2024, time.May, 1),
		date(2025, time.January, 1),
	} {
		assert.Equal(t, StatusMantenimiento, ResolveNaturalStatus(today, start, end, true))
	}
}
