package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/firetemplate/items-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository is the local profile directory, keyed by UID
type ProfileRepository interface {
	UpsertByUID(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
}

// MongoProfileRepository implements ProfileRepository using MongoDB
type MongoProfileRepository struct {
	col *mongo.Collection
}

// NewMongoProfileRepository ensures a unique index on uid so concurrent
// first logins cannot create duplicate profiles.
func NewMongoProfileRepository(ctx context.Context, col *mongo.Collection) (*MongoProfileRepository, error) {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create uid index: %w", err)
	}
	return &MongoProfileRepository{col: col}, nil
}

func (r *MongoProfileRepository) UpsertByUID(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	out, err := r.upsert(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		// lost the insert race; the document exists now, so update it
		out, err = r.upsert(ctx, p)
	}
	return out, err
}

func (r *MongoProfileRepository) upsert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	now := time.Now().UTC()
	filter := bson.M{"uid": p.UID}
	update := bson.M{
		"$set": bson.M{
			"email":       p.Email,
			"displayName": p.DisplayName,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.Profile
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetByUID returns (nil, nil) when no profile exists
func (r *MongoProfileRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// MemoryProfileRepository keeps profiles in process memory
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: map[string]models.Profile{}}
}

func (r *MemoryProfileRepository) UpsertByUID(_ context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	stored, ok := r.profiles[p.UID]
	if !ok {
		stored = models.Profile{UID: p.UID, CreatedAt: now}
	}
	stored.Email = p.Email
	stored.DisplayName = nil
	if p.DisplayName != nil {
		name := *p.DisplayName
		stored.DisplayName = &name
	}
	stored.UpdatedAt = now
	r.profiles[p.UID] = stored
	out := stored
	return &out, nil
}

func (r *MemoryProfileRepository) GetByUID(_ context.Context, uid string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
