package label

// SilenceToken is the canonical label written for merged/collapsed silence.
const SilenceToken = "SP"

// TicksPerSecond: HTK label times are in 100ns units.
const TicksPerSecond = 10_000_000

const tickSeconds = 1e-7

type Segment struct {
	Start   int64 // ticks
	End     int64 // ticks
	Phoneme string
}

func (s Segment) Duration() float64 { return TicksToSeconds(s.End - s.Start) }

func TicksToSeconds(ticks int64) float64 { return float64(ticks) * tickSeconds }

// SecondsToTicks truncates toward zero; sub-tick precision is lost.
func SecondsToTicks(seconds float64) int64 { return int64(seconds / tickSeconds) }
