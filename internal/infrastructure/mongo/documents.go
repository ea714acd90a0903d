package mongo

import (
	"time"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
)

// AnswersDocument is the embedded answers sub-document.
type AnswersDocument struct {
	Password   string `bson:"password"`
	TwoFactor  string `bson:"twoFactor"`
	Updates    string `bson:"updates"`
	PublicWifi string `bson:"publicWifi"`
	Backup     string `bson:"backup"`
}

// RecommendationDocument is one embedded recommendation.
type RecommendationDocument struct {
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Priority    string `bson:"priority"`
}

// EvaluationDocument is the MongoDB shape of an evaluation. The evaluation id
// doubles as _id so lookups need no secondary index.
type EvaluationDocument struct {
	ID              string                   `bson:"_id"`
	Timestamp       time.Time                `bson:"timestamp"`
	Name            string                   `bson:"name"`
	Email           string                   `bson:"email"`
	Score           int                      `bson:"score"`
	Recommendations []RecommendationDocument `bson:"recommendations"`
	Answers         AnswersDocument          `bson:"answers"`
}

// EvaluationSummaryDocument is the projection used by List.
type EvaluationSummaryDocument struct {
	ID        string    `bson:"_id"`
	Timestamp time.Time `bson:"timestamp"`
	Name      string    `bson:"name"`
	Score     int       `bson:"score"`
}

func toEvaluationDocument(e domain.Evaluation) EvaluationDocument {
	recs := make([]RecommendationDocument, 0, len(e.Recommendations))
	for _, r := range e.Recommendations {
		recs = append(recs, RecommendationDocument{
			Title:       r.Title,
			Description: r.Description,
			Priority:    string(r.Priority),
		})
	}
	return EvaluationDocument{
		ID:              e.ID,
		Timestamp:       e.Timestamp.UTC(),
		Name:            e.Name.String(),
		Email:           e.Email.String(),
		Score:           e.Score,
		Recommendations: recs,
		Answers: AnswersDocument{
			Password:   string(e.Answers.Password),
			TwoFactor:  string(e.Answers.TwoFactor),
			Updates:    string(e.Answers.Updates),
			PublicWifi: string(e.Answers.PublicWifi),
			Backup:     string(e.Answers.Backup),
		},
	}
}

func mapEvaluationDocument(doc EvaluationDocument) domain.Evaluation {
	recs := make([]domain.Recommendation, 0, len(doc.Recommendations))
	for _, r := range doc.Recommendations {
		recs = append(recs, domain.Recommendation{
			Title:       r.Title,
			Description: r.Description,
			Priority:    domain.Priority(r.Priority),
		})
	}
	return domain.Evaluation{
		ID:              doc.ID,
		Timestamp:       doc.Timestamp.UTC(),
		Name:            domain.Name(doc.Name),
		Email:           domain.Email(doc.Email),
		Score:           doc.Score,
		Recommendations: recs,
		Answers: domain.AnswerSet{
			Password:   domain.AnswerValue(doc.Answers.Password),
			TwoFactor:  domain.AnswerValue(doc.Answers.TwoFactor),
			Updates:    domain.AnswerValue(doc.Answers.Updates),
			PublicWifi: domain.AnswerValue(doc.Answers.PublicWifi),
			Backup:     domain.AnswerValue(doc.Answers.Backup),
		},
	}
}

func mapSummaryDocument(doc EvaluationSummaryDocument) domain.EvaluationSummary {
	return domain.EvaluationSummary{
		ID:        doc.ID,
		Timestamp: doc.Timestamp.UTC(),
		Name:      domain.Name(doc.Name),
		Score:     doc.Score,
	}
}
