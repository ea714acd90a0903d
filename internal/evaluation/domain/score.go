package domain

const pointsPerAnswer = 10

// ScoringPolicy controls how answers translate into points.
//
// The zero value scores every "si"/"siempre" as full credit, including
// publicWifi=si, which the recommendations treat as a risk. InvertPublicWifi
// makes the two agree by crediting publicWifi=no instead.
type ScoringPolicy struct {
	InvertPublicWifi bool
}

// Score returns the 0-100 score of answers under the default policy.
func Score(answers AnswerSet) int {
	return ScoringPolicy{}.Score(answers)
}

// Score returns the 0-100 score of answers.
func (p ScoringPolicy) Score(answers AnswerSet) int {
	values := make([]AnswerValue, 0, len(questionnaire))
	for _, q := range questionnaire {
		value := answers.Get(q.ID)
		if p.InvertPublicWifi && q.ID == QuestionPublicWifi {
			value = invertYesNo(value)
		}
		values = append(values, value)
	}
	return scoreValues(values)
}

func invertYesNo(value AnswerValue) AnswerValue {
	switch value {
	case AnswerYes:
		return AnswerNo
	case AnswerNo:
		return AnswerYes
	}
	return value
}

func answerPoints(value AnswerValue) int {
	switch value {
	case AnswerYes, AnswerAlways:
		return pointsPerAnswer
	case AnswerSometimes:
		return pointsPerAnswer / 2
	}
	return 0
}

// scoreValues rounds 100*earned/max half-up. An empty input scores 0.
func scoreValues(values []AnswerValue) int {
	maxPoints := pointsPerAnswer * len(values)
	if maxPoints == 0 {
		return 0
	}
	earned := 0
	for _, v := range values {
		earned += answerPoints(v)
	}
	return (200*earned + maxPoints) / (2 * maxPoints)
}

// Level buckets a score the way results are presented.
type Level string

const (
	LevelGood Level = "good"
	LevelFair Level = "fair"
	LevelPoor Level = "poor"
)

// LevelFor returns the presentation bucket of score.
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelGood
	case score >= 50:
		return LevelFair
	default:
		return LevelPoor
	}
}
