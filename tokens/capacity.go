package tokens

// NearingFraction is the usage fraction at which a meter should start
// warning.
const NearingFraction = 0.8

// CriticalFraction is the usage fraction at which a meter should treat
// the window as effectively full.
const CriticalFraction = 0.95

// Status buckets a usage fraction for display purposes.
type Status string

const (
	StatusOK       Status = "ok"
	StatusNearing  Status = "nearing"
	StatusCritical Status = "critical"
	StatusOver     Status = "over"
)

// Capacity relates used tokens to a context-window ceiling.
type Capacity struct {
	// Limit is the context window size in tokens.
	Limit int

	// Used is the estimated tokens consumed.
	Used int
}

// Remaining returns the tokens left in the window, never negative.
func (c Capacity) Remaining() int {
	remaining := c.Limit - c.Used
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Fraction returns used/limit. Estimates can exceed the window, so the
// result is not clamped; an unknown limit reports zero.
func (c Capacity) Fraction() float64 {
	if c.Limit <= 0 {
		return 0
	}
	return float64(c.Used) / float64(c.Limit)
}

// Status buckets the current fraction against the warning thresholds.
func (c Capacity) Status() Status {
	f := c.Fraction()
	switch {
	case f > 1:
		return StatusOver
	case f >= CriticalFraction:
		return StatusCritical
	case f >= NearingFraction:
		return StatusNearing
	default:
		return StatusOK
	}
}

// FitsTokens returns true if adding tokens would stay inside the window.
func (c Capacity) FitsTokens(tokens int) bool {
	return c.Used+tokens <= c.Limit
}
