package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

const collectionCredentials = "credentials"

// CredentialRepository stores password digests keyed by username, in a
// collection separate from profiles so a profile read never carries a hash.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

type mongoCredential struct {
	Username     string `bson:"username"`
	PasswordHash string `bson:"password_hash"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *CredentialRepository) Store(ctx context.Context, username, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoCredential{
		Username:     username,
		PasswordHash: passwordHash,
		UpdatedAt:    time.Now().Unix(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindHash(ctx context.Context, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCredential
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find credential: %w", err)
	}
	return mc.PasswordHash, nil
}

func (r *CredentialRepository) UpdateHash(ctx context.Context, username, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique username index.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
