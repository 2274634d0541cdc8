package matching

type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	lowThreshold    = 40
	mediumThreshold = 60
	highThreshold   = 80
)

// BadgeTier maps a score to the badge shown next to a job.
func BadgeTier(score int) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	case score >= lowThreshold:
		return TierLow
	default:
		return TierNone
	}
}

// Label is the human readable name of the score's tier.
func Label(score int) string {
	switch BadgeTier(score) {
	case TierHigh:
		return "Excellent"
	case TierMedium:
		return "Good"
	case TierLow:
		return "Fair"
	default:
		return "Low"
	}
}
