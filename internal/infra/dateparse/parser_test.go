//go:build unit

package dateparse

import (
	"testing"
	"time"

	"parkingbot/internal/domain/claim"
	"parkingbot/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var base = time.Date(2016, 5, 4, 10, 0, 0, 0, time.UTC)

func TestParser(t *testing.T) {
	p := NewParser(clock.NewMockClock(base))
	today := claim.DateOf(base)

	t.Run("iso dates are taken verbatim", func(t *testing.T) {
		d, ok := p.Parse(" 2016-05-08 ")
		require.True(t, ok)
		assert.Equal(t, "2016-05-08", d.String())

		d, ok = p.Parse("2015-01-01")
		require.True(t, ok)
		assert.Equal(t, "2015-01-01", d.String())
	})

	t.Run("relative dates", func(t *testing.T) {
		d, ok := p.Parse("tomorrow")
		require.True(t, ok)
		assert.Equal(t, "2016-05-05", d.String())

		d, ok = p.Parse("today")
		require.True(t, ok)
		assert.True(t, d.Equal(today))
	})

	t.Run("weekdays land in the future", func(t *testing.T) {
		d, ok := p.Parse("next wednesday")
		require.True(t, ok)
		assert.True(t, d.After(today))
		assert.Equal(t, time.Wednesday, d.Time(time.UTC).Weekday())
	})

	t.Run("unparseable", func(t *testing.T) {
		for _, text := range []string{"", "   ", "whenever", "the blue moon"} {
			_, ok := p.Parse(text)
			assert.False(t, ok, text)
		}
	})
}

func TestPreferFuture(t *testing.T) {
	p := NewParser(clock.NewMockClock(base))
	today := claim.DateOf(base)
	monday := today.AddDays(-2)

	assert.Equal(t, "2016-05-09", p.preferFuture(monday, today, "monday").String())
	assert.Equal(t, monday, p.preferFuture(monday, today, "last monday"))
	assert.Equal(t, monday, p.preferFuture(monday, today, "2 days ago"))
	assert.Equal(t, today, p.preferFuture(today, today, "wednesday"))

	may2 := today.AddDays(-2)
	assert.Equal(t, "2017-05-02", p.preferFuture(may2, today, "May 2").String())
	assert.Equal(t, "2017-05-02", p.preferFuture(may2, today, "2 may").String())
	assert.Equal(t, may2, p.preferFuture(may2, today, "May 2 2016"))
	assert.Equal(t, may2, p.preferFuture(may2, today, "last may 2"))

	leap, err := claim.NewDate(2016, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29", p.preferFuture(leap, today, "feb 29").String())
}

func TestParserMonthDayRollsForward(t *testing.T) {
	// Wednesday 2016-05-11
	p := NewParser(clock.NewMockClock(time.Date(2016, 5, 11, 10, 0, 0, 0, time.UTC)))

	for _, text := range []string{"May 8", "8 may"} {
		d, ok := p.Parse(text)
		require.True(t, ok, text)
		assert.Equal(t, "2017-05-08", d.String(), text)
	}

	d, ok := p.Parse("May 20")
	require.True(t, ok)
	assert.Equal(t, "2016-05-20", d.String())

	d, ok = p.Parse("May 11")
	require.True(t, ok)
	assert.Equal(t, "2016-05-11", d.String())
}
