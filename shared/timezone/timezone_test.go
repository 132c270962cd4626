package timezone_test

import (
	"testing"
	"time"

	"campusroom/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	loc, err := timezone.Load("Asia/Jerusalem")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jerusalem", loc.String())

	// IDT is UTC+3 in July.
	summer := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, 12, summer.Hour())

	_, err = timezone.Load("Mars/Olympus_Mons")
	assert.ErrorContains(t, err, "unknown timezone")
}

func TestCampusZone(t *testing.T) {
	loc := timezone.GetLocation()
	require.NotNil(t, loc)

	assert.Equal(t, loc, timezone.Now().Location())

	instant := time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)
	converted := timezone.ToAppTime(instant)

	assert.True(t, instant.Equal(converted))
	assert.Equal(t, loc, converted.Location())
}

func TestFormat(t *testing.T) {
	assert.Empty(t, timezone.Format(time.Time{}, time.RFC3339))

	instant := time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, instant.In(timezone.GetLocation()).Format(time.DateTime), timezone.Format(instant, time.DateTime))
}
