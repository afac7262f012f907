// Package scoring converts admin impact/effort judgments into a numeric
// priority score and a strategic quadrant. It is a pure function layer:
// no storage, no clock, no state.
package scoring

import "fmt"

// Level is a three-step qualitative rating.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Quadrant is the strategic classification derived from (impact, effort).
type Quadrant string

const (
	QuadrantQuickWin     Quadrant = "quick-win"
	QuadrantStrategicBet Quadrant = "strategic-bet"
	QuadrantNiceToHave   Quadrant = "nice-to-have"
	QuadrantReconsider   Quadrant = "reconsider"
)

// magnitude maps a level onto the scoring scale.
var magnitude = map[Level]int{
	LevelHigh:   100,
	LevelMedium: 60,
	LevelLow:    30,
}

// ParseLevel validates a raw string against the three-level enum.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelHigh, LevelMedium, LevelLow:
		return Level(s), nil
	}
	return "", fmt.Errorf("invalid level %q: must be one of high, medium, low", s)
}

// Classify maps (impact, effort) to (score, quadrant).
//
// score = impactMagnitude + (100 - effortMagnitude), so the range is 30..170
// and higher is strictly better: high impact and low effort both push the
// score up. The quadrant follows a fixed decision table; the first matching
// rule wins:
//
//	impact=high,  effort=low|medium -> quick-win
//	impact=high,  effort=high       -> strategic-bet
//	impact=med|low, effort=low      -> nice-to-have
//	otherwise                       -> reconsider
func Classify(impact, effort Level) (int, Quadrant, error) {
	im, ok := magnitude[impact]
	if !ok {
		return 0, "", fmt.Errorf("invalid impact level %q", impact)
	}
	em, ok := magnitude[effort]
	if !ok {
		return 0, "", fmt.Errorf("invalid effort level %q", effort)
	}

	score := im + (100 - em)

	var quadrant Quadrant
	switch {
	case impact == LevelHigh && effort != LevelHigh:
		quadrant = QuadrantQuickWin
	case impact == LevelHigh:
		quadrant = QuadrantStrategicBet
	case effort == LevelLow:
		quadrant = QuadrantNiceToHave
	default:
		quadrant = QuadrantReconsider
	}

	return score, quadrant, nil
}
