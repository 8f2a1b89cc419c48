// Package ledger implements the rewards ledger: recording a recycling
// event and updating the submitting user's cumulative stats as one unit
// of work.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/models"
)

// DefaultRecentLimit bounds the per-user detection history read.
const DefaultRecentLimit = 10

// RewardDelta is the cumulative-stat change a submission applies.
type RewardDelta struct {
	Points    int
	Recycled  int
	CO2Saved  float64
	NewBadges []string
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ApplyReward(ctx context.Context, id string, delta RewardDelta) (*models.User, error)
}

type DetectionStore interface {
	Insert(ctx context.Context, detection *models.Detection) (*models.Detection, error)
	ListRecentByUser(ctx context.Context, userID string, limit int64) ([]models.Detection, error)
}

// TxRunner makes the detection insert and the user update all-or-nothing.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	users      UserStore
	detections DetectionStore
	tx         TxRunner

	// userLocks serializes submissions per user so badge evaluation never
	// races two concurrent read-modify-write sequences.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewService(users UserStore, detections DetectionStore, tx TxRunner) *Service {
	return &Service{
		users:      users,
		detections: detections,
		tx:         tx,
		userLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockFor(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// SubmitRecycling records one confirmed recycling event for the user:
// it writes a Detection, increments the user's points, totalRecycled and
// co2Saved, and evaluates the badge rules. Either every write lands or
// none does.
func (s *Service) SubmitRecycling(ctx context.Context, userID string, item *models.RecycledItem) (*models.Detection, *models.User, error) {
	if userID == "" || item == nil {
		return nil, nil, fmt.Errorf("%w: userId and item are required", apperr.ErrInvalidInput)
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	delta := RewardDelta{
		Points:    item.Points,
		Recycled:  1,
		CO2Saved:  item.CO2Saved,
		NewBadges: badgesEarned(user.TotalRecycled+1, user.Badges),
	}

	var (
		saved   *models.Detection
		updated *models.User
	)
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		detection := &models.Detection{
			UserID:     user.ID,
			Type:       item.Type,
			Name:       item.Name,
			Confidence: item.Confidence,
			Weight:     item.Weight,
			Value:      item.Value,
			Points:     item.Points,
			CO2Saved:   item.CO2Saved,
			Condition:  item.Condition,
			Image:      item.Image,
		}

		saved, err = s.detections.Insert(txCtx, detection)
		if err != nil {
			return err
		}

		updated, err = s.users.ApplyReward(txCtx, userID, delta)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return saved, updated, nil
}

// ListRecentDetections returns the user's detections newest first,
// truncated to limit. An unknown user yields an empty list.
func (s *Service) ListRecentDetections(ctx context.Context, userID string, limit int64) ([]models.Detection, error) {
	if limit <= 0 || limit > DefaultRecentLimit {
		limit = DefaultRecentLimit
	}
	return s.detections.ListRecentByUser(ctx, userID, limit)
}
