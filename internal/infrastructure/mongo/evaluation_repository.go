package mongo

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/sngm3741/secucheck/api/internal/evaluation/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// EvaluationRepository implements application.EvaluationRepository using MongoDB.
type EvaluationRepository struct {
	collection *mongo.Collection
	logger     *log.Logger
}

// NewEvaluationRepository binds the repository to a collection of db.
// Documents that fail to decode are reported on logger and skipped by List.
func NewEvaluationRepository(db *mongo.Database, collectionName string, logger *log.Logger) *EvaluationRepository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EvaluationRepository{collection: db.Collection(collectionName), logger: logger}
}

// EnsureIndexes creates the timestamp index used by the history listing.
func (r *EvaluationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	})
	if err != nil {
		return &domain.StoreError{Op: "init", Err: err}
	}
	return nil
}

// Save upserts the evaluation keyed by its id.
func (r *EvaluationRepository) Save(ctx context.Context, evaluation domain.Evaluation) error {
	doc := toEvaluationDocument(evaluation)
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return &domain.StoreError{Op: "save", ID: evaluation.ID, Err: err}
	}
	return nil
}

// List returns every stored evaluation as a summary, newest first.
func (r *EvaluationRepository) List(ctx context.Context) ([]domain.EvaluationSummary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "timestamp": 1, "name": 1, "score": 1}).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	defer cursor.Close(ctx)

	summaries := make([]domain.EvaluationSummary, 0)
	for cursor.Next(ctx) {
		var doc EvaluationSummaryDocument
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Printf("skipping undecodable evaluation document %v: %v", cursor.Current.Lookup("_id"), err)
			continue
		}
		summaries = append(summaries, mapSummaryDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	return summaries, nil
}

// FindByID loads one evaluation. A missing document maps to domain.ErrNotFound.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*domain.Evaluation, error) {
	var doc EvaluationDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StoreError{Op: "get", ID: id, Err: err}
	}
	evaluation := mapEvaluationDocument(doc)
	return &evaluation, nil
}

// Ping checks that the primary is reachable.
func (r *EvaluationRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
