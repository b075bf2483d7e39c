package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adventcal/internal/model"
)

// DayConfigRepo handles MongoDB operations for the per-day game configs
type DayConfigRepo interface {
	Upsert(ctx context.Context, cfg *model.DayConfig) error
	GetByDay(ctx context.Context, day int) (*model.DayConfig, error)
	List(ctx context.Context) ([]*model.DayConfig, error)
}

type dayConfigRepo struct {
	collection *mongo.Collection
}

// NewDayConfigRepo creates a new day-config repository
func NewDayConfigRepo(db *mongo.Database) DayConfigRepo {
	return &dayConfigRepo{
		collection: db.Collection("dayconfigs"),
	}
}

func (r *dayConfigRepo) Upsert(ctx context.Context, cfg *model.DayConfig) error {
	if cfg.ID == "" {
		cfg.ID = "d_" + uuid.New().String()[:8]
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"day": cfg.Day}, cfg, opts)
	return err
}

func (r *dayConfigRepo) GetByDay(ctx context.Context, day int) (*model.DayConfig, error) {
	var cfg model.DayConfig
	err := r.collection.FindOne(ctx, bson.M{"day": day}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *dayConfigRepo) List(ctx context.Context) ([]*model.DayConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.DayConfig
	if err = cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
