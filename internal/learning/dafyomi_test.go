package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDafYomi(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Daf
	}{
		{"First day of first cycle", day(1923, time.September, 11), Daf{"Berachot", 2}},
		{"Last day of cycle 7", day(1975, time.June, 23), Daf{"Niddah", 73}},
		{"First day of cycle 8", day(1975, time.June, 24), Daf{"Berachot", 2}},
		{"Cycle 14 start", day(2020, time.January, 5), Daf{"Berachot", 2}},
		{"Mid tractate", day(2024, time.October, 3), Daf{"Baba Batra", 100}},
		{"New year", day(2025, time.January, 1), Daf{"Sanhedrin", 15}},
		{"Shekalim", day(2021, time.March, 23), Daf{"Shekalim", 2}},
		{"Kinnim", day(2027, time.March, 13), Daf{"Kinnim", 23}},
		{"Tamid", day(2027, time.March, 16), Daf{"Tamid", 26}},
		{"Midot", day(2027, time.March, 25), Daf{"Midot", 34}},
		{"Niddah", day(2027, time.March, 28), Daf{"Niddah", 2}},
		{"Cycle 15 start", day(2027, time.June, 8), Daf{"Berachot", 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DafYomi(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDafYomi_OldShekalim(t *testing.T) {
	got, err := DafYomi(day(1930, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, Daf{"Chullin", 6}, got)
}

func TestDafYomi_BeforeCycle(t *testing.T) {
	_, err := DafYomi(day(1923, time.September, 10))
	assert.ErrorIs(t, err, ErrBeforeCycle)
}

func TestCycle(t *testing.T) {
	c, err := Cycle(day(2024, time.October, 3))
	require.NoError(t, err)
	assert.Equal(t, 14, c)

	c, err = Cycle(day(1923, time.September, 11))
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestDaf_String(t *testing.T) {
	assert.Equal(t, "Baba Batra 100", Daf{"Baba Batra", 100}.String())
}

func TestDafYomi_ConsecutivePages(t *testing.T) {
	start := day(2020, time.January, 5)
	prev, err := DafYomi(start)
	require.NoError(t, err)
	for i := 1; i < 400; i++ {
		cur, err := DafYomi(start.AddDate(0, 0, i))
		require.NoError(t, err)
		if cur.Tractate == prev.Tractate {
			assert.Equal(t, prev.Page+1, cur.Page, cur.String())
		} else {
			assert.Equal(t, 2, cur.Page, cur.String())
		}
		prev = cur
	}
}
