package weekly_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stashops/depotd/internal/domain/weekly"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestKey_Format(t *testing.T) {
	// 2025-01-15 falls in ISO week 3.
	ts := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "U_2025-W03", weekly.Key("U", ts))
	assert.Equal(t, "2025-W03", weekly.Week(ts))
}

func TestWeek_ISOYearBoundary(t *testing.T) {
	// Monday 2024-12-30 belongs to ISO week 1 of 2025.
	assert.Equal(t, "2025-W01", weekly.Week(time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)))
	// Friday 2021-01-01 belongs to ISO week 53 of 2020.
	assert.Equal(t, "2020-W53", weekly.Week(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)))
	// Sunday 2023-01-01 still counts into 2022.
	assert.Equal(t, "2022-W52", weekly.Week(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMemory_AddAndGet(t *testing.T) {
	m := weekly.NewMemory()
	ts := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	key := weekly.Key("U", ts)

	m.Add(key, weekly.Totals{weekly.KeyEfedrina: dec(20), weekly.KeyDinheiro: dec(500)})
	m.Add(key, weekly.Totals{weekly.KeyEfedrina: dec(5)})

	totals, err := m.Get(context.Background(), "U", "2025-W03")
	assert.NoError(t, err)
	assert.True(t, totals[weekly.KeyEfedrina].Equal(dec(25)))
	assert.True(t, totals[weekly.KeyDinheiro].Equal(dec(500)))

	byUser, err := m.ListWeek(context.Background(), "2025-W03")
	assert.NoError(t, err)
	assert.Len(t, byUser, 1)
	assert.True(t, byUser["U"][weekly.KeyEfedrina].Equal(dec(25)))
}
