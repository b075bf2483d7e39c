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

// UserRepo handles MongoDB operations for users
type UserRepo interface {
	GetOrCreate(ctx context.Context, subject, name string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

// GetOrCreate resolves an auth subject to the internal user, creating it
// on first sight. The internal id is what score records key on.
func (r *userRepo) GetOrCreate(ctx context.Context, subject, name string) (*model.User, error) {
	user := &model.User{
		ID:        "u_" + uuid.New().String()[:8],
		Subject:   subject,
		Name:      name,
		CreatedAt: time.Now(),
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"subject": subject},
		bson.M{"$setOnInsert": user},
		opts,
	).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	if len(ids) == 0 {
		return map[string]*model.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
