// internal/store/stats_store.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatsStore aggregates platform-wide totals for the admin dashboard.
type StatsStore struct {
	db *mongo.Database
}

func NewStatsStore(db *mongo.Database) *StatsStore {
	return &StatsStore{db: db}
}

type Summary struct {
	TotalUsers      int64            `json:"totalUsers"`
	TotalDetections int64            `json:"totalDetections"`
	TotalPoints     int64            `json:"totalPoints"`
	TotalRecycled   int64            `json:"totalRecycled"`
	TotalCO2Saved   float64          `json:"totalCo2Saved"`
	BinsByStatus    map[string]int64 `json:"binsByStatus"`
}

func (s *StatsStore) Summary(ctx context.Context) (*Summary, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	summary := &Summary{BinsByStatus: map[string]int64{}}

	userPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalPoints", Value: bson.D{{Key: "$sum", Value: "$points"}}},
			{Key: "totalRecycled", Value: bson.D{{Key: "$sum", Value: "$totalRecycled"}}},
			{Key: "totalCo2", Value: bson.D{{Key: "$sum", Value: "$co2Saved"}}},
		}}},
	}

	cursor, err := s.db.Collection("users").Aggregate(cctx, userPipeline)
	if err != nil {
		return nil, mapErr(err)
	}
	var userTotals []struct {
		Count         int64   `bson:"count"`
		TotalPoints   int64   `bson:"totalPoints"`
		TotalRecycled int64   `bson:"totalRecycled"`
		TotalCO2      float64 `bson:"totalCo2"`
	}
	if err = cursor.All(cctx, &userTotals); err != nil {
		return nil, mapErr(err)
	}
	if len(userTotals) > 0 {
		summary.TotalUsers = userTotals[0].Count
		summary.TotalPoints = userTotals[0].TotalPoints
		summary.TotalRecycled = userTotals[0].TotalRecycled
		summary.TotalCO2Saved = userTotals[0].TotalCO2
	}

	summary.TotalDetections, err = s.db.Collection("detections").CountDocuments(cctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}

	binPipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	binCursor, err := s.db.Collection("bins").Aggregate(cctx, binPipeline)
	if err != nil {
		return nil, mapErr(err)
	}
	var binCounts []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = binCursor.All(cctx, &binCounts); err != nil {
		return nil, mapErr(err)
	}
	for _, bc := range binCounts {
		summary.BinsByStatus[bc.Status] = bc.Count
	}

	return summary, nil
}
