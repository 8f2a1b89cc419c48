package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bin statuses. Bins are edited by admins; they do not report on their own.
const (
	BinStatusOperational = "operational"
	BinStatusFull        = "full"
	BinStatusMaintenance = "maintenance"
)

type Bin struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BinID         string             `bson:"binID" json:"binID"` // User-friendly unique ID, e.g., "BIN-3f9a21c4"
	Name          string             `bson:"name" json:"name"`
	Lat           float64            `bson:"lat" json:"lat"`
	Lng           float64            `bson:"lng" json:"lng"`
	Address       string             `bson:"address" json:"address"`
	AcceptedItems []string           `bson:"acceptedItems" json:"acceptedItems"`
	FillLevel     int                `bson:"fillLevel" json:"fillLevel"` // 0-100
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
