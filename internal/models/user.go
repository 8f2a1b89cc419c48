package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

// User struct matches the document in MongoDB. The cumulative fields
// (points, totalRecycled, co2Saved, badges) only ever grow, and only
// through the rewards ledger.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash, never the raw secret
	UserType      string             `bson:"userType" json:"userType"`
	Points        int                `bson:"points" json:"points"`
	TotalRecycled int                `bson:"totalRecycled" json:"totalRecycled"`
	Badges        []string           `bson:"badges" json:"badges"`
	CO2Saved      float64            `bson:"co2Saved" json:"co2Saved"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
