package ledger

// Band buckets a net energy score for the motivational message.
type Band string

// Thresholds are 0/40/70: net at or below zero is Critical, then Low up
// to 40, Moderate up to 70, Good above that.
const (
	BandCritical Band = "critical"
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandGood     Band = "good"
)

// ClassifyNet maps a net score to its band.
func ClassifyNet(net float64) Band {
	switch {
	case net <= 0:
		return BandCritical
	case net <= 40:
		return BandLow
	case net <= 70:
		return BandModerate
	default:
		return BandGood
	}
}

var messages = map[Band]string{
	BandCritical: "You are running on empty. Drop something from the plan.",
	BandLow:      "The day barely pays for itself. Add a boost or two.",
	BandModerate: "A decent balance. Keep an eye on the drains.",
	BandGood:     "Strong surplus. Today gives more than it takes.",
}

// Message returns the display text for a band.
func (b Band) Message() string {
	return messages[b]
}
