// internal/store/bin_store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/models"
)

type BinStore struct {
	col *mongo.Collection
}

func NewBinStore(db *mongo.Database) *BinStore {
	return &BinStore{col: db.Collection("bins")}
}

// BinPatch carries a partial bin update; nil fields are left untouched.
type BinPatch struct {
	Name          *string
	Lat           *float64
	Lng           *float64
	Address       *string
	AcceptedItems []string
	FillLevel     *int
	Status        *string
}

func (s *BinStore) List(ctx context.Context) ([]models.Bin, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.col.Find(cctx, bson.M{})
	if err != nil {
		return nil, mapErr(err)
	}
	defer cursor.Close(cctx)

	var bins []models.Bin
	if err = cursor.All(cctx, &bins); err != nil {
		return nil, mapErr(err)
	}
	if bins == nil {
		bins = []models.Bin{}
	}
	return bins, nil
}

func (s *BinStore) GetByBinID(ctx context.Context, binID string) (*models.Bin, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	var bin models.Bin
	if err := s.col.FindOne(cctx, bson.M{"binID": binID}).Decode(&bin); err != nil {
		return nil, mapErr(err)
	}
	return &bin, nil
}

func (s *BinStore) Create(ctx context.Context, bin *models.Bin) (*models.Bin, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	if bin.BinID == "" {
		bin.BinID = fmt.Sprintf("BIN-%s", uuid.New().String()[:8])
	}

	count, err := s.col.CountDocuments(cctx, bson.M{"binID": bin.BinID})
	if err != nil {
		return nil, mapErr(err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: bin with this ID already exists", apperr.ErrInvalidInput)
	}

	if bin.Status == "" {
		bin.Status = models.BinStatusOperational
	}
	if bin.AcceptedItems == nil {
		bin.AcceptedItems = []string{}
	}
	bin.CreatedAt = time.Now()
	bin.UpdatedAt = bin.CreatedAt

	result, err := s.col.InsertOne(cctx, bin)
	if err != nil {
		return nil, mapErr(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		bin.ID = oid
	}

	return bin, nil
}

func (s *BinStore) Update(ctx context.Context, binID string, patch BinPatch) (*models.Bin, error) {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Lat != nil {
		set["lat"] = *patch.Lat
	}
	if patch.Lng != nil {
		set["lng"] = *patch.Lng
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.AcceptedItems != nil {
		set["acceptedItems"] = patch.AcceptedItems
	}
	if patch.FillLevel != nil {
		set["fillLevel"] = *patch.FillLevel
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Bin
	if err := s.col.FindOneAndUpdate(cctx, bson.M{"binID": binID}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return nil, mapErr(err)
	}
	return &updated, nil
}

func (s *BinStore) Delete(ctx context.Context, binID string) error {
	cctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.col.DeleteOne(cctx, bson.M{"binID": binID})
	if err != nil {
		return mapErr(err)
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
