package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fittrack/internal/events"
	"fittrack/internal/model"
	"fittrack/internal/stats"
)

// ErrMissingFields rejects a create payload without a name or without a
// positive duration. The duration arrives as a pointer so an absent field
// and an explicit zero are distinguishable; both are invalid.
var ErrMissingFields = errors.New("missing fields")

type ActivityStore interface {
	Create(activity *model.Activity) error
	ListByUserID(userID uint) ([]model.Activity, error)
}

type ActivityEventPublisher interface {
	Publish(ctx context.Context, event events.ActivityCreated) error
}

// ActivityListCache fronts the store for reads. All methods are best
// effort; a failing cache must never fail a request.
type ActivityListCache interface {
	GetList(ctx context.Context, userID uint) ([]model.Activity, bool, error)
	SetList(ctx context.Context, userID uint, activities []model.Activity) error
	Invalidate(ctx context.Context, userID uint) error
	MarkDirty(ctx context.Context, userID uint) error
	IsDirty(ctx context.Context, userID uint) (bool, error)
}

type ActivityService struct {
	store     ActivityStore
	cache     ActivityListCache
	publisher ActivityEventPublisher
}

type CreateActivityInput struct {
	UserID          uint
	Name            string
	DurationMinutes *int
	Date            *time.Time
	Notes           string
}

func NewActivityService(store ActivityStore, cache ActivityListCache, publisher ActivityEventPublisher) *ActivityService {
	return &ActivityService{
		store:     store,
		cache:     cache,
		publisher: publisher,
	}
}

// Create persists exactly one new activity owned by the caller. There is no
// idempotency key: identical submissions produce distinct records.
func (s *ActivityService) Create(ctx context.Context, input CreateActivityInput) (*model.Activity, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.DurationMinutes == nil || *input.DurationMinutes <= 0 {
		return nil, ErrMissingFields
	}

	date := time.Now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	activity := &model.Activity{
		UserID:          input.UserID,
		Name:            name,
		DurationMinutes: *input.DurationMinutes,
		Date:            date,
		Notes:           strings.TrimSpace(input.Notes),
	}
	if err := s.store.Create(activity); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.MarkDirty(ctx, input.UserID); err != nil {
			log.Printf("mark activity cache dirty failed: %v", err)
		}
		if err := s.cache.Invalidate(ctx, input.UserID); err != nil {
			log.Printf("invalidate activity cache failed: %v", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewActivityCreated(*activity)); err != nil {
			// The row is already committed; the audit trail catches up later.
			log.Printf("publish activity event failed: %v", err)
		}
	}

	return activity, nil
}

// List returns the caller's activities newest first, serving from the cache
// when it holds a clean copy.
func (s *ActivityService) List(ctx context.Context, userID uint) ([]model.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, userID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetList(ctx, userID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	activities, err := s.store.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, userID); dirtyErr == nil && !dirty {
			if err := s.cache.SetList(ctx, userID, activities); err != nil {
				log.Printf("set activity cache failed: %v", err)
			}
		}
	}
	return activities, nil
}

// Summary aggregates the caller's full list in the given zone.
func (s *ActivityService) Summary(ctx context.Context, userID uint, loc *time.Location) (stats.Summary, error) {
	activities, err := s.List(ctx, userID)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(activities, loc), nil
}
