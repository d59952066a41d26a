package deposits_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stashops/depotd/internal/domain/deposits"
	"github.com/stashops/depotd/internal/domain/weekly"
)

func TestEffectiveStatus_Precedence(t *testing.T) {
	tests := []struct {
		flags deposits.Flags
		want  deposits.Status
	}{
		{deposits.Flags{}, deposits.StatusPending},
		{deposits.Flags{MetaPaid: true}, deposits.StatusMetaPaid},
		{deposits.Flags{MetaPaid: true, Manufactured: true}, deposits.StatusManufactured},
		{deposits.Flags{Manufactured: true, Confirmed: true}, deposits.StatusConfirmed},
		{deposits.Flags{MetaPaid: true, Manufactured: true, Confirmed: true, Refused: true}, deposits.StatusRefused},
		{deposits.Flags{Refused: true}, deposits.StatusRefused},
		{deposits.Flags{Confirmed: true}, deposits.StatusConfirmed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.flags.EffectiveStatus())
	}
}

func TestFlags_WithAndGet(t *testing.T) {
	f := deposits.Flags{}
	f = f.With(deposits.FlagConfirmed, true)
	f = f.With(deposits.FlagMetaPaid, true)
	assert.True(t, f.Get(deposits.FlagConfirmed))
	assert.True(t, f.Get(deposits.FlagMetaPaid))
	assert.False(t, f.Get(deposits.FlagRefused))

	f = f.With(deposits.FlagConfirmed, false)
	assert.False(t, f.Get(deposits.FlagConfirmed))
}

func TestDeposit_Validate(t *testing.T) {
	d := deposits.Deposit{}
	assert.ErrorIs(t, d.Validate(), deposits.ErrEmptyDeposit)

	d = deposits.Deposit{Efedrina: -1}
	assert.ErrorIs(t, d.Validate(), deposits.ErrNegativeField)

	d = deposits.Deposit{Efedrina: 20}
	assert.NoError(t, d.Validate())

	// money alone is enough
	d = deposits.Deposit{Dinheiro: decimal.NewFromInt(500)}
	assert.NoError(t, d.Validate())
}

func TestDeposit_ResourceTotals(t *testing.T) {
	d := deposits.Deposit{Efedrina: 20, Dinheiro: decimal.NewFromInt(500)}
	totals := d.ResourceTotals()

	assert.Len(t, totals, 2)
	assert.True(t, totals[weekly.KeyEfedrina].Equal(decimal.NewFromInt(20)))
	assert.True(t, totals[weekly.KeyDinheiro].Equal(decimal.NewFromInt(500)))
	_, ok := totals[weekly.KeyFolhas]
	assert.False(t, ok, "zero fields stay out of the aggregate")
}
