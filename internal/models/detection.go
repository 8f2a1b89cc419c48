package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Detection is one recorded recycling event. Detections are append-only:
// once written they are never edited or deleted.
type Detection struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Type       string             `bson:"type" json:"type"`
	Name       string             `bson:"name" json:"name"`
	Confidence float64            `bson:"confidence" json:"confidence"` // 0-100
	Weight     float64            `bson:"weight" json:"weight"`         // kilograms
	Value      float64            `bson:"value" json:"value"`           // estimated resale value
	Points     int                `bson:"points" json:"points"`
	CO2Saved   float64            `bson:"co2Saved" json:"co2Saved"` // kilograms of CO2
	Condition  string             `bson:"condition" json:"condition"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// RecycledItem is the item payload a client submits for recording. The
// figures come from the classifier or the manual-selection menu; the
// ledger records them as given.
type RecycledItem struct {
	Type       string  `json:"type" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Confidence float64 `json:"confidence" binding:"gte=0,lte=100"`
	Weight     float64 `json:"weight" binding:"gt=0"`
	Value      float64 `json:"value" binding:"gte=0"`
	Points     int     `json:"points" binding:"gte=0"`
	CO2Saved   float64 `json:"co2Saved" binding:"gte=0"`
	Condition  string  `json:"condition" binding:"omitempty,oneof=Excellent Good Fair"`
	Image      string  `json:"image"`
}
