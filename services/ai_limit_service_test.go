package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsageRecord struct {
	userID  uint
	feature AIFeature
	at      time.Time
}

// memoryUsageStore drives the gate in tests without a database.
type memoryUsageStore struct {
	records   []fakeUsageRecord
	clock     func() time.Time
	countErr  error
	appendErr error
}

func (m *memoryUsageStore) CountSince(userID uint, feature AIFeature, since time.Time) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, r := range m.records {
		if r.userID == userID && r.feature == feature && !r.at.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memoryUsageStore) Append(userID uint, feature AIFeature) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, fakeUsageRecord{userID: userID, feature: feature, at: m.clock()})
	return nil
}

func newTestLimitService(now time.Time) (*AILimitService, *memoryUsageStore) {
	clock := func() time.Time { return now }
	store := &memoryUsageStore{clock: clock}
	return &AILimitService{store: store, now: clock}, store
}

func TestCheckLimitDeniesAtLimit(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local)
	svc, _ := newTestLimitService(now)

	for i := 0; i < 5; i++ {
		decision, err := svc.CheckLimit(1, FeatureExerciseAI, 5, Daily)
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "use %d should be allowed", i+1)
		assert.Equal(t, i, decision.Used)
		svc.LogUsage(1, FeatureExerciseAI)
	}

	decision, err := svc.CheckLimit(1, FeatureExerciseAI, 5, Daily)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 5, decision.Used)
	assert.Equal(t, "You've reached your daily limit of 5 for this feature.", decision.Message())
}

func TestCheckLimitIsolatesUsersAndFeatures(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local)
	svc, _ := newTestLimitService(now)

	svc.LogUsage(1, FeatureFoodScan)
	svc.LogUsage(1, FeatureFoodScan)
	svc.LogUsage(1, FeatureFoodScan)

	// Same user, different feature.
	decision, err := svc.CheckLimit(1, FeatureExerciseAI, 5, Daily)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.Used)

	// Different user, same feature.
	decision, err = svc.CheckLimit(2, FeatureFoodScan, 3, Daily)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.Used)

	// The user who spent the quota is out.
	decision, err = svc.CheckLimit(1, FeatureFoodScan, 3, Daily)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}

func TestDailyWindowStartsAtLocalMidnight(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 30, 0, 0, time.Local)
	svc, store := newTestLimitService(now)

	// Three scans late last night must not count against today.
	lastNight := time.Date(2025, time.March, 9, 23, 50, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		store.records = append(store.records, fakeUsageRecord{userID: 1, feature: FeatureFoodScan, at: lastNight})
	}

	decision, err := svc.CheckLimit(1, FeatureFoodScan, 3, Daily)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Zero(t, decision.Used)

	// One use at exactly midnight is inside the window.
	midnight := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	store.records = append(store.records, fakeUsageRecord{userID: 1, feature: FeatureFoodScan, at: midnight})

	decision, err = svc.CheckLimit(1, FeatureFoodScan, 3, Daily)
	require.NoError(t, err)
	assert.Equal(t, 1, decision.Used)
}

func TestWeeklyWindowIsRollingSevenDays(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	svc, store := newTestLimitService(now)

	store.records = append(store.records,
		fakeUsageRecord{userID: 1, feature: FeatureDietPlan, at: now.AddDate(0, 0, -8)}, // outside
		fakeUsageRecord{userID: 1, feature: FeatureDietPlan, at: now.AddDate(0, 0, -6)}, // inside
	)

	decision, err := svc.CheckLimit(1, FeatureDietPlan, 1, Weekly)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 1, decision.Used)
	assert.Equal(t, "You've reached your weekly limit of 1 for this feature.", decision.Message())
}

func TestCheckLimitStoreFailure(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	svc, store := newTestLimitService(now)
	store.countErr = errors.New("connection refused")

	decision, err := svc.CheckLimit(1, FeatureFoodScan, 3, Daily)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUsageStoreUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
	assert.False(t, decision.Allowed)
}

func TestCheckFeatureBypasses(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	svc, store := newTestLimitService(now)

	free := &models.User{Premium: false}
	free.ID = 1
	premium := &models.User{Premium: true}
	premium.ID = 2

	// Unlimited feature never touches the store.
	store.countErr = errors.New("must not be called")
	decision, err := svc.CheckFeature(free, FeatureManualFoodScan)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Premium users skip the check entirely.
	decision, err = svc.CheckFeature(premium, FeatureFoodScan)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	store.countErr = nil

	// The free tier goes through the default table.
	for i := 0; i < 3; i++ {
		svc.LogUsage(free.ID, FeatureFoodScan)
	}
	decision, err = svc.CheckFeature(free, FeatureFoodScan)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 3, decision.Limit)
	assert.Equal(t, Daily, decision.TimeFrame)

	_, err = svc.CheckFeature(free, AIFeature("time_travel"))
	assert.Error(t, err)
}

func TestLogUsage(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	svc, store := newTestLimitService(now)

	// Unlimited features are not recorded at all.
	svc.LogUsage(1, FeatureManualFoodScan)
	assert.Empty(t, store.records)

	svc.LogUsage(1, FeatureFoodScan)
	require.Len(t, store.records, 1)
	assert.Equal(t, FeatureFoodScan, store.records[0].feature)

	// A failed append is swallowed; the caller already did the work.
	store.appendErr = errors.New("disk full")
	svc.LogUsage(1, FeatureFoodScan)
	assert.Len(t, store.records, 1)
}
