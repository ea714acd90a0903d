package domain

import (
	"sort"
	"time"
)

// Evaluation is one persisted self-assessment. Values are never modified
// after NewEvaluation returns; use Clone before handing one to another owner.
type Evaluation struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	Name            Name             `json:"name"`
	Email           Email            `json:"email"`
	Score           int              `json:"score"`
	Recommendations []Recommendation `json:"recommendations"`
	Answers         AnswerSet        `json:"answers"`
}

// EvaluationSummary is the history projection of an Evaluation.
type EvaluationSummary struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      Name      `json:"name"`
	Score     int       `json:"score"`
}

// NewEvaluation assembles a record from already validated parts. The
// timestamp is kept in UTC at millisecond precision so every backend
// round-trips it unchanged.
func NewEvaluation(id string, name Name, email Email, answers AnswerSet, score int, recommendations []Recommendation, now time.Time) Evaluation {
	recs := make([]Recommendation, len(recommendations))
	copy(recs, recommendations)
	return Evaluation{
		ID:              id,
		Timestamp:       now.UTC().Truncate(time.Millisecond),
		Name:            name,
		Email:           email,
		Score:           score,
		Recommendations: recs,
		Answers:         answers,
	}
}

// Clone returns a copy that shares no memory with e.
func (e Evaluation) Clone() Evaluation {
	clone := e
	clone.Recommendations = make([]Recommendation, len(e.Recommendations))
	copy(clone.Recommendations, e.Recommendations)
	return clone
}

// Summary projects e onto the history view.
func (e Evaluation) Summary() EvaluationSummary {
	return EvaluationSummary{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Name:      e.Name,
		Score:     e.Score,
	}
}

// SortNewestFirst orders summaries by descending timestamp. Ties keep their
// incoming order.
func SortNewestFirst(summaries []EvaluationSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
}

// ScoreBucket counts evaluations that share a score.
type ScoreBucket struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// EvaluationStats aggregates the stored history.
type EvaluationStats struct {
	Count        int           `json:"count"`
	AverageScore float64       `json:"averageScore"`
	MinScore     int           `json:"minScore"`
	MaxScore     int           `json:"maxScore"`
	LatestAt     *time.Time    `json:"latestAt,omitempty"`
	Levels       map[Level]int `json:"levels"`
	Distribution []ScoreBucket `json:"distribution"`
}

// Summarize computes stats over summaries.
func Summarize(summaries []EvaluationSummary) EvaluationStats {
	stats := EvaluationStats{
		Levels:       map[Level]int{LevelGood: 0, LevelFair: 0, LevelPoor: 0},
		Distribution: []ScoreBucket{},
	}
	if len(summaries) == 0 {
		return stats
	}

	counts := make(map[int]int)
	total := 0
	stats.MinScore = summaries[0].Score
	stats.MaxScore = summaries[0].Score
	latest := summaries[0].Timestamp
	for _, s := range summaries {
		total += s.Score
		counts[s.Score]++
		stats.Levels[LevelFor(s.Score)]++
		if s.Score < stats.MinScore {
			stats.MinScore = s.Score
		}
		if s.Score > stats.MaxScore {
			stats.MaxScore = s.Score
		}
		if s.Timestamp.After(latest) {
			latest = s.Timestamp
		}
	}

	stats.Count = len(summaries)
	stats.AverageScore = float64(total) / float64(len(summaries))
	stats.LatestAt = &latest
	for score, count := range counts {
		stats.Distribution = append(stats.Distribution, ScoreBucket{Score: score, Count: count})
	}
	sort.Slice(stats.Distribution, func(i, j int) bool {
		return stats.Distribution[i].Score < stats.Distribution[j].Score
	})
	return stats
}
