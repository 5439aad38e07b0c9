package diet

import "strings"

// Activity levels derived from the exercise plan, in the exact spelling
// the diet model artifacts were trained with.
const (
	ActivityVeryActive = "very active"
	ActivityModerate   = "moderate"
	ActivityLight      = "light"
	ActivitySedentary  = "sedentary"
)

// ActivityLevelFor maps an exercise plan's weekly frequency and intensity
// to an activity level. First matching rule wins:
//
//	freq >= 5 and high intensity        -> very active
//	freq >= 3 and medium/high intensity -> moderate
//	freq <= 2                           -> light
//	anything else                       -> sedentary
func ActivityLevelFor(frequencyPerWeek int, intensityLevel string) string {
	intensity := strings.ToLower(intensityLevel)
	switch {
	case frequencyPerWeek >= 5 && intensity == "high":
		return ActivityVeryActive
	case frequencyPerWeek >= 3 && (intensity == "medium" || intensity == "high"):
		return ActivityModerate
	case frequencyPerWeek <= 2:
		return ActivityLight
	default:
		return ActivitySedentary
	}
}
