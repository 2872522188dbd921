package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elffinance/microfin-gateway/internal/infrastructure/tokenseal"
)

const refreshTokenCollection = "device_refresh_tokens"

// RefreshTokenRepository keeps one sealed refresh token document per device.
type RefreshTokenRepository struct {
	coll   *mongo.Collection
	sealer tokenseal.Sealer
}

func NewRefreshTokenRepository(db *mongo.Database, sealer tokenseal.Sealer) *RefreshTokenRepository {
	return &RefreshTokenRepository{coll: db.Collection(refreshTokenCollection), sealer: sealer}
}

type refreshTokenDoc struct {
	DeviceID  string    `bson:"device_id"`
	Token     string    `bson:"token"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *RefreshTokenRepository) Load(ctx context.Context, deviceID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc refreshTokenDoc
	err := r.coll.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load refresh token: %w", err)
	}

	token, err := r.sealer.Open(doc.Token)
	if err != nil {
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	return token, nil
}

// Save upserts on device_id so at most one token exists per device.
func (r *RefreshTokenRepository) Save(ctx context.Context, deviceID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sealed, err := r.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}

	doc := refreshTokenDoc{DeviceID: deviceID, Token: sealed, UpdatedAt: time.Now().UTC()}
	_, err = r.coll.ReplaceOne(ctx, bson.M{"device_id": deviceID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, deviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"device_id": deviceID}); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique device index backing the one-token rule.
func (r *RefreshTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "device_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
