package activity

import (
	"errors"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Activity identifies one tracked competition domain.
type Activity string

const (
	Baseball      Activity = "baseball"
	Volleyball    Activity = "volleyball"
	International Activity = "international"
)

// Default is foregrounded when no activity is in or near its season.
const Default = Baseball

// ErrUnknownActivity is returned when input cannot be mapped to a tracked activity.
var ErrUnknownActivity = errors.New("unknown activity")

// maxFuzzyDistance bounds how far a typo may be from a known name.
const maxFuzzyDistance = 2

var aliases = map[string]Activity{
	"baseball":      Baseball,
	"kbo":           Baseball,
	"eagles":        Baseball,
	"volleyball":    Volleyball,
	"vleague":       Volleyball,
	"v-league":      Volleyball,
	"international": International,
	"olympics":      International,
	"asian-games":   International,
	"asiangames":    International,
}

// All returns every tracked activity in display order.
func All() []Activity {
	return []Activity{Baseball, Volleyball, International}
}

// Ordered returns the league activities checked, in order, when picking the primary card.
func Ordered() []Activity {
	return []Activity{Baseball, Volleyball}
}

// Valid reports whether a is one of the tracked activities.
func (a Activity) Valid() bool {
	switch a {
	case Baseball, Volleyball, International:
		return true
	default:
		return false
	}
}

func (a Activity) String() string {
	return string(a)
}

// DisplayName is the card title used when a record carries no name.
func (a Activity) DisplayName() string {
	switch a {
	case Baseball:
		return "Baseball"
	case Volleyball:
		return "Volleyball"
	case International:
		return "International Events"
	default:
		return string(a)
	}
}

// Parse maps user input (exact names, aliases, prefixes or small typos) to an Activity.
func Parse(raw string) (Activity, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", ErrUnknownActivity
	}
	if a, ok := aliases[key]; ok {
		return a, nil
	}

	var (
		best     Activity
		bestDist = -1
	)
	for name, a := range aliases {
		if len(key) >= 3 && strings.HasPrefix(name, key) {
			return a, nil
		}
		dist := fuzzy.LevenshteinDistance(key, name)
		if dist > maxFuzzyDistance {
			continue
		}
		if bestDist == -1 || dist < bestDist || (dist == bestDist && a < best) {
			best, bestDist = a, dist
		}
	}
	if bestDist == -1 {
		return "", ErrUnknownActivity
	}
	return best, nil
}
