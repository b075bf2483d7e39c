package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adventcal/internal/model"
)

// ScoreRepo handles MongoDB operations for score records. At most one
// record exists per (user, day, gameType); SaveFirst never overwrites.
type ScoreRepo interface {
	SaveFirst(ctx context.Context, record *model.ScoreRecord) (*model.ScoreRecord, bool, error)
	GetByUser(ctx context.Context, userID string) ([]*model.ScoreRecord, error)
	GetByUserDayGame(ctx context.Context, userID string, day int, gameType model.GameType) (*model.ScoreRecord, error)
	GetByDayGame(ctx context.Context, day int, gameType model.GameType) ([]*model.ScoreRecord, error)
	Totals(ctx context.Context) ([]model.TotalEntry, error)
	EnsureIndexes(ctx context.Context) error
}

type scoreRepo struct {
	collection *mongo.Collection
}

// NewScoreRepo creates a new score repository
func NewScoreRepo(db *mongo.Database) ScoreRepo {
	return &scoreRepo{
		collection: db.Collection("scores"),
	}
}

func (r *scoreRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "day", Value: 1},
			{Key: "gameType", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SaveFirst stores the record unless one already exists for the same
// (user, day, gameType). It returns the authoritative record and whether
// this call inserted it; on a repeat save the original comes back unchanged.
func (r *scoreRepo) SaveFirst(ctx context.Context, record *model.ScoreRecord) (*model.ScoreRecord, bool, error) {
	if record.ID == "" {
		record.ID = "s_" + uuid.New().String()[:8]
	}
	if record.PlayedAt.IsZero() {
		record.PlayedAt = time.Now()
	}

	filter := bson.M{
		"userId":   record.UserID,
		"day":      record.Day,
		"gameType": record.GameType,
	}
	update := bson.M{"$setOnInsert": record}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.ScoreRecord
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if err != nil {
		return nil, false, err
	}
	return &stored, stored.ID == record.ID, nil
}

func (r *scoreRepo) GetByUser(ctx context.Context, userID string) ([]*model.ScoreRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ScoreRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *scoreRepo) GetByUserDayGame(ctx context.Context, userID string, day int, gameType model.GameType) (*model.ScoreRecord, error) {
	var record model.ScoreRecord
	err := r.collection.FindOne(ctx, bson.M{
		"userId":   userID,
		"day":      day,
		"gameType": gameType,
	}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByDayGame returns all records for a board, sorted by score descending
func (r *scoreRepo) GetByDayGame(ctx context.Context, day int, gameType model.GameType) ([]*model.ScoreRecord, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "score", Value: -1},
		{Key: "playedAt", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"day": day, "gameType": gameType}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ScoreRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Totals aggregates each user's summed score across all days
func (r *scoreRepo) Totals(ctx context.Context) ([]model.TotalEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$userId",
			"userName": bson.M{"$last": "$userName"},
			"total":    bson.M{"$sum": "$score"},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		UserID   string `bson:"_id"`
		UserName string `bson:"userName"`
		Total    int    `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	entries := make([]model.TotalEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.TotalEntry{
			UserID:   row.UserID,
			UserName: row.UserName,
			Total:    row.Total,
			Rank:     i + 1,
		}
	}
	return entries, nil
}
