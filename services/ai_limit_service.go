package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"

	"gorm.io/gorm"
)

// AIFeature tags each rate-limited AI-backed action.
type AIFeature string

const (
	FeatureFoodScan       AIFeature = "food_scan"
	FeatureManualFoodScan AIFeature = "manual_food_scan"
	FeatureExerciseAI     AIFeature = "exercise_ai"
	FeatureDietPlan       AIFeature = "diet_plan"
	FeatureAISuggestions  AIFeature = "ai_suggestions"
)

type TimeFrame string

const (
	Daily  TimeFrame = "daily"  // window starts at local midnight
	Weekly TimeFrame = "weekly" // rolling now-7d, not a calendar week
)

// FeatureLimit is the product-default ceiling for one feature.
type FeatureLimit struct {
	Limit     int
	TimeFrame TimeFrame
	Unlimited bool // check bypassed and usage not logged
}

// DefaultFeatureLimits applies to free-tier users; premium bypasses all of it.
var DefaultFeatureLimits = map[AIFeature]FeatureLimit{
	FeatureFoodScan:       {Limit: 3, TimeFrame: Daily},
	FeatureManualFoodScan: {Unlimited: true},
	FeatureExerciseAI:     {Limit: 5, TimeFrame: Daily},
	FeatureDietPlan:       {Limit: 1, TimeFrame: Weekly},
	FeatureAISuggestions:  {Limit: 2, TimeFrame: Weekly},
}

// ErrUsageStoreUnavailable marks an infrastructure failure while checking the
// quota. Callers get this as an error, distinct from an exhausted quota, so
// they can pick their own fallback policy.
var ErrUsageStoreUnavailable = errors.New("usage store unavailable")

// UsageStore is the append-only record store behind the gate.
type UsageStore interface {
	CountSince(userID uint, feature AIFeature, since time.Time) (int64, error)
	Append(userID uint, feature AIFeature) error
}

type gormUsageStore struct{ db *gorm.DB }

func (s gormUsageStore) CountSince(userID uint, feature AIFeature, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.AIUsageLog{}).
		Where("user_id = ? AND feature = ? AND created_at >= ?", userID, string(feature), since).
		Count(&count).Error
	return count, err
}

func (s gormUsageStore) Append(userID uint, feature AIFeature) error {
	return s.db.Create(&models.AIUsageLog{
		UserID:    userID,
		Feature:   string(feature),
		CreatedAt: time.Now(),
	}).Error
}

// LimitDecision is the gate's answer. Denied decisions carry the limit and
// time frame so the UI can tell the user exactly what they ran into.
type LimitDecision struct {
	Allowed   bool      `json:"allowed"`
	Limit     int       `json:"limit"`
	TimeFrame TimeFrame `json:"time_frame"`
	Used      int       `json:"used"`
}

// Message renders the user-facing denial text.
func (d LimitDecision) Message() string {
	if d.Allowed {
		return ""
	}
	return fmt.Sprintf("You've reached your %s limit of %d for this feature.", d.TimeFrame, d.Limit)
}

// AILimitService enforces a soft usage ceiling per (user, feature). The
// check-then-log pair is deliberately not transactional: two concurrent
// requests can both pass the check before either logs, overshooting the
// nominal limit by the degree of concurrency. Accepted for a soft quota.
type AILimitService struct {
	store UsageStore
	now   func() time.Time
}

func NewAILimitService(db *gorm.DB) *AILimitService {
	return &AILimitService{store: gormUsageStore{db: db}, now: time.Now}
}

// CheckLimit reports whether one more use of feature fits under limit within
// the time frame. A store failure returns an error wrapping
// ErrUsageStoreUnavailable instead of a denial.
func (s *AILimitService) CheckLimit(userID uint, feature AIFeature, limit int, frame TimeFrame) (LimitDecision, error) {
	decision := LimitDecision{Limit: limit, TimeFrame: frame}

	count, err := s.store.CountSince(userID, feature, s.windowStart(frame))
	if err != nil {
		return decision, fmt.Errorf("%w: %v", ErrUsageStoreUnavailable, err)
	}

	decision.Used = int(count)
	decision.Allowed = count < int64(limit)
	return decision, nil
}

// CheckFeature applies the product-default limit table. Premium users and
// unlimited features are admitted without touching the store.
func (s *AILimitService) CheckFeature(user *models.User, feature AIFeature) (LimitDecision, error) {
	fl, ok := DefaultFeatureLimits[feature]
	if !ok {
		return LimitDecision{}, fmt.Errorf("unknown AI feature %q", feature)
	}
	if fl.Unlimited || user.Premium {
		return LimitDecision{Allowed: true, Limit: fl.Limit, TimeFrame: fl.TimeFrame}, nil
	}
	return s.CheckLimit(user.ID, feature, fl.Limit, fl.TimeFrame)
}

// LogUsage appends one usage record. Fire-and-forget: a failed write is
// reported but must never block or reverse the already-performed action.
func (s *AILimitService) LogUsage(userID uint, feature AIFeature) {
	if fl, ok := DefaultFeatureLimits[feature]; ok && fl.Unlimited {
		return // unlimited features don't count against anything
	}
	if err := s.store.Append(userID, feature); err != nil {
		log.Printf("ai usage log failed for user %d feature %s: %v", userID, feature, err)
	}
}

func (s *AILimitService) windowStart(frame TimeFrame) time.Time {
	now := s.now()
	if frame == Weekly {
		return now.AddDate(0, 0, -7)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
