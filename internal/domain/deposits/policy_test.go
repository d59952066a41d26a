package deposits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stashops/depotd/internal/domain/deposits"
)

func TestDecide_NotificationTable(t *testing.T) {
	tests := []struct {
		name     string
		prev     deposits.Flags
		flag     deposits.Flag
		value    bool
		notify   bool
		severity deposits.Severity
	}{
		{"refused on always notifies", deposits.Flags{}, deposits.FlagRefused, true, true, deposits.SeverityRefused},
		{"refused on notifies even when confirmed", deposits.Flags{Confirmed: true}, deposits.FlagRefused, true, true, deposits.SeverityRefused},
		{"refused off never un-notifies", deposits.Flags{Refused: true}, deposits.FlagRefused, false, false, ""},
		{"confirmed on, not manufactured: approved", deposits.Flags{}, deposits.FlagConfirmed, true, true, deposits.SeverityApproved},
		{"confirmed on, manufactured already: shipped", deposits.Flags{Manufactured: true}, deposits.FlagConfirmed, true, true, deposits.SeverityShipped},
		{"confirmed off silent", deposits.Flags{Confirmed: true}, deposits.FlagConfirmed, false, false, ""},
		{"manufactured on while confirmed: shipped", deposits.Flags{Confirmed: true}, deposits.FlagManufactured, true, true, deposits.SeverityShipped},
		{"manufactured on alone silent", deposits.Flags{}, deposits.FlagManufactured, true, false, ""},
		{"manufactured off silent", deposits.Flags{Manufactured: true, Confirmed: true}, deposits.FlagManufactured, false, false, ""},
		{"metaPaid on silent", deposits.Flags{}, deposits.FlagMetaPaid, true, false, ""},
		{"metaPaid off silent", deposits.Flags{MetaPaid: true}, deposits.FlagMetaPaid, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff := deposits.Decide(tt.prev, tt.flag, tt.value)
			assert.Equal(t, tt.notify, eff.Notify)
			if tt.notify {
				assert.Equal(t, tt.severity, eff.Severity)
			}
		})
	}
}

func TestDecide_StockAndWeeklyEffects(t *testing.T) {
	eff := deposits.Decide(deposits.Flags{}, deposits.FlagConfirmed, true)
	assert.True(t, eff.AppendStock)
	assert.Zero(t, eff.Weekly)

	// A refused deposit stays refused; confirming must not book stock.
	eff = deposits.Decide(deposits.Flags{Refused: true}, deposits.FlagConfirmed, true)
	assert.False(t, eff.AppendStock)

	eff = deposits.Decide(deposits.Flags{Confirmed: true}, deposits.FlagConfirmed, false)
	assert.False(t, eff.AppendStock)

	eff = deposits.Decide(deposits.Flags{}, deposits.FlagMetaPaid, true)
	assert.Equal(t, 1, eff.Weekly)
	assert.False(t, eff.AppendStock)

	eff = deposits.Decide(deposits.Flags{MetaPaid: true}, deposits.FlagMetaPaid, false)
	assert.Equal(t, -1, eff.Weekly)

	eff = deposits.Decide(deposits.Flags{}, deposits.FlagManufactured, true)
	assert.False(t, eff.AppendStock)
	assert.Zero(t, eff.Weekly)
}
