package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthName(t *testing.T) {
	m, ok := ParseMonthName("Январь", 2025)
	require.True(t, ok)
	assert.Equal(t, YearMonth{Year: 2025, Index: time.January}, m)

	m, ok = ParseMonthName("Декабрь", 2024)
	require.True(t, ok)
	assert.Equal(t, time.December, m.Index)

	_, ok = ParseMonthName("January", 2025)
	assert.False(t, ok)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, YearMonth{Year: 2025, Index: time.March}, m)
	assert.Equal(t, "2025-03", m.String())
	assert.Equal(t, "Март", m.Name())

	_, err = ParseMonth("март")
	assert.Error(t, err)
}

func TestSelectableMonths(t *testing.T) {
	months := SelectableMonths(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC))
	require.Len(t, months, 4)
	assert.Equal(t, YearMonth{Year: 2025, Index: time.January}, months[0])
	assert.Equal(t, YearMonth{Year: 2025, Index: time.April}, months[3])
}

func TestMonthName_OutOfRange(t *testing.T) {
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
	assert.False(t, YearMonth{Index: 0}.Valid())
}
