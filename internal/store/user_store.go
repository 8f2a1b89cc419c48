// internal/store/user_store.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/ledger"
	"e-waste-api-server/internal/models"
)

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection("users")}
}

// Create inserts a new user with all cumulative fields zeroed. Email is
// stored case-folded and must be unique.
func (s *UserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	count, err := s.col.CountDocuments(cctx, bson.M{"email": user.Email})
	if err != nil {
		return nil, mapErr(err)
	}
	if count > 0 {
		return nil, apperr.ErrDuplicateEmail
	}

	if user.UserType == "" {
		user.UserType = models.UserTypeUser
	}
	user.Points = 0
	user.TotalRecycled = 0
	user.CO2Saved = 0
	user.Badges = []string{}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := s.col.InsertOne(cctx, user)
	if err != nil {
		return nil, mapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.col.FindOne(cctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	cctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := s.col.FindOne(cctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.col.Find(cctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(cctx)

	var users []models.User
	if err = cursor.All(cctx, &users); err != nil {
		return nil, mapErr(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// UserPatch carries a partial profile update; nil fields are left untouched.
// Cumulative fields are not here on purpose, only the ledger moves those.
type UserPatch struct {
	Name  *string
	Phone *string
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	cctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	if err := s.col.FindOneAndUpdate(cctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

// ApplyReward applies a reward delta to the user's cumulative counters in
// a single update. $inc keeps the counter arithmetic atomic on the server
// and $addToSet guarantees a badge is never held twice.
func (s *UserStore) ApplyReward(ctx context.Context, id string, delta ledger.RewardDelta) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	update := bson.M{
		"$inc": bson.M{
			"points":        delta.Points,
			"totalRecycled": delta.Recycled,
			"co2Saved":      delta.CO2Saved,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	if len(delta.NewBadges) > 0 {
		update["$addToSet"] = bson.M{"badges": bson.M{"$each": delta.NewBadges}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		return nil, mapErr(fmt.Errorf("apply reward: %w", err))
	}
	return &updated, nil
}
