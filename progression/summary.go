package progression

import (
	"fmt"

	"github.com/lixenwraith/chest-sort/parameter"
)

// Medal is the results-screen award
type Medal uint8

const (
	MedalBronze Medal = iota
	MedalSilver
	MedalGold
)

func (m Medal) String() string {
	switch m {
	case MedalGold:
		return "gold"
	case MedalSilver:
		return "silver"
	default:
		return "bronze"
	}
}

// Summary is the end-of-session report
type Summary struct {
	Correct  int64
	Error    int64
	Accuracy float64 // Percent, 0 when nothing was evaluated
	Medal    Medal
}

// NewSummary derives accuracy and medal from the counters
func NewSummary(correct, errs int64) Summary {
	s := Summary{Correct: correct, Error: errs}
	if total := correct + errs; total > 0 {
		s.Accuracy = float64(correct) / float64(total) * 100
	}
	switch {
	case s.Accuracy >= parameter.GoldThreshold:
		s.Medal = MedalGold
	case s.Accuracy >= parameter.SilverThreshold:
		s.Medal = MedalSilver
	default:
		s.Medal = MedalBronze
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("correct=%d error=%d accuracy=%.1f%% medal=%s", s.Correct, s.Error, s.Accuracy, s.Medal)
}
