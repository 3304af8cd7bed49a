package record

import (
	"math"
	"time"

	"github.com/hupe1980/txwal/internal/conv"
)

// Ticks is a point in time expressed as the number of 100-nanosecond
// intervals elapsed since 0001-01-01T00:00:00Z (UTC).
type Ticks uint64

const (
	ticksPerSecond = 10_000_000
	nanosPerTick   = 100

	// unixEpochTicks is the tick count of 1970-01-01T00:00:00Z.
	unixEpochTicks = 621_355_968_000_000_000
)

// TicksFromTime converts t to Ticks. Instants before year 1 clamp to zero.
func TicksFromTime(t time.Time) Ticks {
	t = t.UTC()
	sec := t.Unix()
	// Split to avoid overflowing int64 nanoseconds outside 1678..2262.
	ticks := sec*ticksPerSecond + int64(t.Nanosecond()/nanosPerTick) + unixEpochTicks
	if ticks < 0 {
		return 0
	}
	return Ticks(ticks)
}

// NowTicks returns the current UTC time as Ticks.
func NowTicks() Ticks {
	return TicksFromTime(time.Now())
}

// Time converts the tick count to a UTC time.Time. Counts beyond the int64
// range saturate.
func (t Ticks) Time() time.Time {
	v, err := conv.Uint64ToInt64(uint64(t))
	if err != nil {
		v = math.MaxInt64
	}
	rel := v - unixEpochTicks
	sec := rel / ticksPerSecond
	rem := rel % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return time.Unix(sec, rem*nanosPerTick).UTC()
}

func (t Ticks) String() string {
	return t.Time().Format(time.RFC3339Nano)
}
