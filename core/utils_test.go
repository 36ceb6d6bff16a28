package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abovethehill/churchadmin/core"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Sunday Service", core.CleanString("  Sunday Service \n"))
	assert.Equal(t, "sunday service", core.CleanString(" Sunday Service ", true))
}

func TestParseDate(t *testing.T) {
	d, err := core.ParseDate("2024-01-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), d)

	d, err = core.ParseDate("2024-01-07T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = core.ParseDate("07/01/2024")
	assert.Error(t, err)
	_, err = core.ParseDate("")
	assert.Error(t, err)
}

func TestStartOfDayAndMonth(t *testing.T) {
	at := time.Date(2024, 3, 15, 13, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), core.StartOfDay(at))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), core.StartOfMonth(at))
}
