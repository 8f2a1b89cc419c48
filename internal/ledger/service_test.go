package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/models"
)

const testUserID = "507f1f77bcf86cd799439011"

// fakeUserStore is an in-memory UserStore with the same semantics as the
// mongo one: copies out, atomic delta application, no duplicate badges.
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	applyErr error
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return copyUser(user), nil
}

func (f *fakeUserStore) ApplyReward(ctx context.Context, id string, delta RewardDelta) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	user.Points += delta.Points
	user.TotalRecycled += delta.Recycled
	user.CO2Saved += delta.CO2Saved
	for _, badge := range delta.NewBadges {
		if !holdsBadge(user.Badges, badge) {
			user.Badges = append(user.Badges, badge)
		}
	}
	return copyUser(user), nil
}

func (f *fakeUserStore) snapshot() map[string]*models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]*models.User, len(f.users))
	for id, user := range f.users {
		snap[id] = copyUser(user)
	}
	return snap
}

func (f *fakeUserStore) restore(snap map[string]*models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = snap
}

func copyUser(user *models.User) *models.User {
	clone := *user
	clone.Badges = append([]string(nil), user.Badges...)
	return &clone
}

func holdsBadge(badges []string, badge string) bool {
	for _, b := range badges {
		if b == badge {
			return true
		}
	}
	return false
}

// fakeDetectionStore assigns strictly increasing createdAt timestamps so
// ordering assertions are deterministic.
type fakeDetectionStore struct {
	mu        sync.Mutex
	byUser    map[string][]models.Detection
	insertErr error
	seq       int
	base      time.Time
}

func newFakeDetectionStore() *fakeDetectionStore {
	return &fakeDetectionStore{
		byUser: make(map[string][]models.Detection),
		base:   time.Now(),
	}
}

func (f *fakeDetectionStore) Insert(ctx context.Context, detection *models.Detection) (*models.Detection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	detection.ID = primitive.NewObjectID()
	detection.CreatedAt = f.base.Add(time.Duration(f.seq) * time.Millisecond)
	f.seq++
	userID := detection.UserID.Hex()
	f.byUser[userID] = append(f.byUser[userID], *detection)
	return detection, nil
}

func (f *fakeDetectionStore) ListRecentByUser(ctx context.Context, userID string, limit int64) ([]models.Detection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	detections := append([]models.Detection(nil), f.byUser[userID]...)
	sort.Slice(detections, func(i, j int) bool {
		return detections[i].CreatedAt.After(detections[j].CreatedAt)
	})
	if int64(len(detections)) > limit {
		detections = detections[:limit]
	}
	return detections, nil
}

func (f *fakeDetectionStore) snapshot() map[string][]models.Detection {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string][]models.Detection, len(f.byUser))
	for id, ds := range f.byUser {
		snap[id] = append([]models.Detection(nil), ds...)
	}
	return snap
}

func (f *fakeDetectionStore) restore(snap map[string][]models.Detection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser = snap
}

// fakeTxRunner snapshots both stores and rolls them back when the
// callback fails, mirroring a mongo transaction abort.
type fakeTxRunner struct {
	users      *fakeUserStore
	detections *fakeDetectionStore
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	userSnap := f.users.snapshot()
	detectionSnap := f.detections.snapshot()
	if err := fn(ctx); err != nil {
		f.users.restore(userSnap)
		f.detections.restore(detectionSnap)
		return err
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserStore, *fakeDetectionStore) {
	t.Helper()

	oid, err := primitive.ObjectIDFromHex(testUserID)
	require.NoError(t, err)

	users := &fakeUserStore{users: map[string]*models.User{
		testUserID: {
			ID:       oid,
			Name:     "Test User",
			Email:    "user@example.com",
			UserType: models.UserTypeUser,
			Badges:   []string{},
		},
	}}
	detections := newFakeDetectionStore()
	tx := &fakeTxRunner{users: users, detections: detections}

	return NewService(users, detections, tx), users, detections
}

func phoneItem() *models.RecycledItem {
	return &models.RecycledItem{
		Type:       "phone",
		Name:       "Smartphone",
		Confidence: 92,
		Weight:     0.18,
		Value:      15,
		Points:     150,
		CO2Saved:   12,
		Condition:  "Good",
	}
}

func TestSubmitRecycling_HappyPath(t *testing.T) {
	svc, _, _ := newTestService(t)

	detection, user, err := svc.SubmitRecycling(context.Background(), testUserID, phoneItem())
	require.NoError(t, err)

	assert.Equal(t, 150, user.Points)
	assert.Equal(t, 1, user.TotalRecycled)
	assert.Equal(t, 12.0, user.CO2Saved)
	assert.Equal(t, []string{"First Drop"}, user.Badges)

	assert.Equal(t, testUserID, detection.UserID.Hex())
	assert.Equal(t, "phone", detection.Type)
	assert.Equal(t, "Smartphone", detection.Name)
	assert.Equal(t, 92.0, detection.Confidence)
	assert.Equal(t, 0.18, detection.Weight)
	assert.Equal(t, 15.0, detection.Value)
	assert.Equal(t, 150, detection.Points)
	assert.Equal(t, 12.0, detection.CO2Saved)
	assert.Equal(t, "Good", detection.Condition)
	assert.False(t, detection.CreatedAt.IsZero())
}

func TestSubmitRecycling_InvalidInput(t *testing.T) {
	svc, _, detections := newTestService(t)

	t.Run("missing user id", func(t *testing.T) {
		_, _, err := svc.SubmitRecycling(context.Background(), "", phoneItem())
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("missing item", func(t *testing.T) {
		_, _, err := svc.SubmitRecycling(context.Background(), testUserID, nil)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	assert.Empty(t, detections.byUser[testUserID])
}

func TestSubmitRecycling_UserNotFound(t *testing.T) {
	svc, _, detections := newTestService(t)

	_, _, err := svc.SubmitRecycling(context.Background(), "64b0c8f2a5e4d3c2b1a09876", phoneItem())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// Nothing may be written when the user lookup fails.
	for _, ds := range detections.byUser {
		assert.Empty(t, ds)
	}
}

func TestSubmitRecycling_Monotonic(t *testing.T) {
	svc, _, _ := newTestService(t)

	var wantPoints int
	var wantCO2 float64
	var lastUser *models.User
	for i := 1; i <= 5; i++ {
		item := phoneItem()
		item.Points = i * 10
		item.CO2Saved = float64(i)
		wantPoints += item.Points
		wantCO2 += item.CO2Saved

		_, user, err := svc.SubmitRecycling(context.Background(), testUserID, item)
		require.NoError(t, err)
		lastUser = user
	}

	assert.Equal(t, 5, lastUser.TotalRecycled)
	assert.Equal(t, wantPoints, lastUser.Points)
	assert.Equal(t, wantCO2, lastUser.CO2Saved)
}

func TestSubmitRecycling_FirstDropAwardedOnce(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, user, err := svc.SubmitRecycling(context.Background(), testUserID, phoneItem())
	require.NoError(t, err)
	assert.Equal(t, []string{"First Drop"}, user.Badges)

	_, user, err = svc.SubmitRecycling(context.Background(), testUserID, phoneItem())
	require.NoError(t, err)
	assert.Equal(t, []string{"First Drop"}, user.Badges)
}

func TestSubmitRecycling_MilestoneBadges(t *testing.T) {
	svc, _, _ := newTestService(t)

	var user *models.User
	var err error
	for i := 0; i < 10; i++ {
		_, user, err = svc.SubmitRecycling(context.Background(), testUserID, phoneItem())
		require.NoError(t, err)
	}

	assert.Equal(t, 10, user.TotalRecycled)
	assert.Contains(t, user.Badges, "First Drop")
	assert.Contains(t, user.Badges, "10 Items Milestone")
	assert.NotContains(t, user.Badges, "50 Items Milestone")
}

func TestSubmitRecycling_AtomicOnUserUpdateFailure(t *testing.T) {
	svc, users, detections := newTestService(t)

	// The detection insert succeeds, then the user update blows up. The
	// transaction must leave no trace of either write.
	users.applyErr = errors.New("user update failed")

	_, _, err := svc.SubmitRecycling(context.Background(), testUserID, phoneItem())
	require.Error(t, err)

	assert.Empty(t, detections.byUser[testUserID], "detection write must be rolled back")

	users.applyErr = nil
	user, err := users.GetByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, 0, user.TotalRecycled)
	assert.Empty(t, user.Badges)
}

func TestSubmitRecycling_ConcurrentSubmissionsLoseNoUpdates(t *testing.T) {
	svc, users, _ := newTestService(t)

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := phoneItem()
			item.Points = 10
			item.CO2Saved = 0.5
			_, _, err := svc.SubmitRecycling(context.Background(), testUserID, item)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	user, err := users.GetByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 10*workers, user.Points)
	assert.Equal(t, workers, user.TotalRecycled)
	assert.Equal(t, []string{"First Drop", "10 Items Milestone"}, user.Badges)
}

func TestListRecentDetections_OrderingAndLimit(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 15; i++ {
		item := phoneItem()
		item.Name = fmt.Sprintf("Item %02d", i)
		_, _, err := svc.SubmitRecycling(context.Background(), testUserID, item)
		require.NoError(t, err)
	}

	detections, err := svc.ListRecentDetections(context.Background(), testUserID, 0)
	require.NoError(t, err)
	require.Len(t, detections, DefaultRecentLimit)

	assert.Equal(t, "Item 14", detections[0].Name)
	for i := 1; i < len(detections); i++ {
		assert.True(t, detections[i-1].CreatedAt.After(detections[i].CreatedAt), "detections must be newest first")
	}
}

func TestListRecentDetections_UnknownUserIsEmptyNotError(t *testing.T) {
	svc, _, _ := newTestService(t)

	detections, err := svc.ListRecentDetections(context.Background(), "64b0c8f2a5e4d3c2b1a09876", 10)
	require.NoError(t, err)
	assert.Empty(t, detections)
}
