package strategy

// Grade is the discrete quality label for one decision.
type Grade string

const (
	Best       Grade = "best"
	Correct    Grade = "correct"
	Inaccuracy Grade = "inaccuracy"
	Wrong      Grade = "wrong"
	Blunder    Grade = "blunder"
)

// GradeDecision maps the solved frequency of a chosen action to its grade.
// Each band is inclusive at its lower bound.
func GradeDecision(freq float64) Grade {
	switch {
	case freq >= 0.85:
		return Best
	case freq >= 0.60:
		return Correct
	case freq >= 0.30:
		return Inaccuracy
	case freq >= 0.10:
		return Wrong
	default:
		return Blunder
	}
}

// SessionScore is the arithmetic mean of the per-decision frequencies, not
// of the grade labels.
func SessionScore(freqs []float64) float64 {
	if len(freqs) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range freqs {
		sum += f
	}
	return sum / float64(len(freqs))
}
