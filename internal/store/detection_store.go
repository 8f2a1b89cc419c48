// internal/store/detection_store.go
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"e-waste-api-server/internal/models"
)

// DetectionStore is the append-only log of recycling events. There is no
// update or delete here on purpose.
type DetectionStore struct {
	col *mongo.Collection
}

func NewDetectionStore(db *mongo.Database) *DetectionStore {
	return &DetectionStore{col: db.Collection("detections")}
}

func (s *DetectionStore) Insert(ctx context.Context, detection *models.Detection) (*models.Detection, error) {
	detection.CreatedAt = time.Now()

	result, err := s.col.InsertOne(ctx, detection)
	if err != nil {
		return nil, mapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		detection.ID = oid
	}

	return detection, nil
}

// ListRecentByUser returns the user's detections newest first. An unknown
// or malformed user id yields an empty list, not an error.
func (s *DetectionStore) ListRecentByUser(ctx context.Context, userID string, limit int64) ([]models.Detection, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.Detection{}, nil
	}

	cctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(cctx, bson.M{"userId": oid}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(cctx)

	var detections []models.Detection
	if err = cursor.All(cctx, &detections); err != nil {
		return nil, mapErr(err)
	}
	if detections == nil {
		detections = []models.Detection{}
	}
	return detections, nil
}
