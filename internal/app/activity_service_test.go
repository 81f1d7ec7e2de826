package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fittrack/internal/events"
	"fittrack/internal/model"
)

type fakeActivityStore struct {
	activities []model.Activity
	nextID     uint
	listCalls  int
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{nextID: 1}
}

func (s *fakeActivityStore) Create(activity *model.Activity) error {
	activity.ID = s.nextID
	s.nextID++
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *fakeActivityStore) ListByUserID(userID uint) ([]model.Activity, error) {
	s.listCalls++
	var out []model.Activity
	for _, a := range s.activities {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCache struct {
	lists       map[uint][]model.Activity
	dirty       map[uint]bool
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{lists: map[uint][]model.Activity{}, dirty: map[uint]bool{}}
}

func (c *fakeCache) GetList(_ context.Context, userID uint) ([]model.Activity, bool, error) {
	list, ok := c.lists[userID]
	return list, ok, nil
}

func (c *fakeCache) SetList(_ context.Context, userID uint, activities []model.Activity) error {
	c.lists[userID] = activities
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID uint) error {
	delete(c.lists, userID)
	c.invalidated++
	return nil
}

func (c *fakeCache) MarkDirty(_ context.Context, userID uint) error {
	c.dirty[userID] = true
	return nil
}

func (c *fakeCache) IsDirty(_ context.Context, userID uint) (bool, error) {
	return c.dirty[userID], nil
}

type fakePublisher struct {
	published []events.ActivityCreated
	fail      bool
}

func (p *fakePublisher) Publish(_ context.Context, event events.ActivityCreated) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, event)
	return nil
}

func minutes(v int) *int { return &v }

func TestCreateActivityOwnedByCaller(t *testing.T) {
	store := newFakeActivityStore()
	service := NewActivityService(store, nil, nil)

	activity, err := service.Create(context.Background(), CreateActivityInput{
		UserID:          7,
		Name:            "Running",
		DurationMinutes: minutes(45),
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), activity.UserID)
	require.Equal(t, 45, activity.DurationMinutes)
	require.NotZero(t, activity.ID)
	require.WithinDuration(t, time.Now(), activity.Date, 2*time.Second)
}

func TestCreateActivityKeepsProvidedDate(t *testing.T) {
	store := newFakeActivityStore()
	service := NewActivityService(store, nil, nil)

	date := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	activity, err := service.Create(context.Background(), CreateActivityInput{
		UserID:          7,
		Name:            "Running",
		DurationMinutes: minutes(45),
		Date:            &date,
	})
	require.NoError(t, err)
	require.True(t, activity.Date.Equal(date))
}

func TestCreateActivityValidation(t *testing.T) {
	store := newFakeActivityStore()
	service := NewActivityService(store, nil, nil)

	cases := []struct {
		name  string
		input CreateActivityInput
	}{
		{"missing name", CreateActivityInput{UserID: 7, DurationMinutes: minutes(30)}},
		{"blank name", CreateActivityInput{UserID: 7, Name: "   ", DurationMinutes: minutes(30)}},
		{"missing duration", CreateActivityInput{UserID: 7, Name: "Running"}},
		{"zero duration", CreateActivityInput{UserID: 7, Name: "Running", DurationMinutes: minutes(0)}},
		{"negative duration", CreateActivityInput{UserID: 7, Name: "Running", DurationMinutes: minutes(-5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tc.input)
			require.ErrorIs(t, err, ErrMissingFields)
		})
	}

	require.Empty(t, store.activities, "rejected payloads must not be persisted")
}

func TestCreateActivityNoDeduplication(t *testing.T) {
	store := newFakeActivityStore()
	service := NewActivityService(store, nil, nil)

	input := CreateActivityInput{UserID: 7, Name: "Running", DurationMinutes: minutes(45)}
	first, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	second, err := service.Create(context.Background(), input)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.activities, 2)
}

func TestCreateActivityPublishesEvent(t *testing.T) {
	store := newFakeActivityStore()
	publisher := &fakePublisher{}
	service := NewActivityService(store, nil, publisher)

	activity, err := service.Create(context.Background(), CreateActivityInput{
		UserID:          7,
		Name:            "Running",
		DurationMinutes: minutes(45),
	})
	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	require.Equal(t, activity.ID, publisher.published[0].ActivityID)
	require.Equal(t, events.ActionActivityCreated, publisher.published[0].Action)
	require.NotEmpty(t, publisher.published[0].EventID)
}

func TestCreateActivitySurvivesPublishFailure(t *testing.T) {
	store := newFakeActivityStore()
	publisher := &fakePublisher{fail: true}
	service := NewActivityService(store, nil, publisher)

	_, err := service.Create(context.Background(), CreateActivityInput{
		UserID:          7,
		Name:            "Running",
		DurationMinutes: minutes(45),
	})
	require.NoError(t, err)
	require.Len(t, store.activities, 1)
}

func TestCreateActivityInvalidatesCache(t *testing.T) {
	store := newFakeActivityStore()
	cache := newFakeCache()
	cache.lists[7] = []model.Activity{{ID: 1, UserID: 7}}
	service := NewActivityService(store, cache, nil)

	_, err := service.Create(context.Background(), CreateActivityInput{
		UserID:          7,
		Name:            "Running",
		DurationMinutes: minutes(45),
	})
	require.NoError(t, err)
	require.Equal(t, 1, cache.invalidated)
	require.True(t, cache.dirty[7])
	require.NotContains(t, cache.lists, uint(7))
}

func TestListServesFromCleanCache(t *testing.T) {
	store := newFakeActivityStore()
	cache := newFakeCache()
	cached := []model.Activity{{ID: 3, UserID: 7, Name: "Cycling", DurationMinutes: 60}}
	cache.lists[7] = cached
	service := NewActivityService(store, cache, nil)

	got, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, cached, got)
	require.Zero(t, store.listCalls)
}

func TestListSkipsDirtyCacheAndRefills(t *testing.T) {
	store := newFakeActivityStore()
	require.NoError(t, store.Create(&model.Activity{UserID: 7, Name: "Running", DurationMinutes: 45}))
	cache := newFakeCache()
	cache.lists[7] = []model.Activity{{ID: 99, UserID: 7, Name: "stale"}}
	cache.dirty[7] = true
	service := NewActivityService(store, cache, nil)

	got, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Running", got[0].Name)
	require.Equal(t, 1, store.listCalls)
}

func TestListScopedToCaller(t *testing.T) {
	store := newFakeActivityStore()
	require.NoError(t, store.Create(&model.Activity{UserID: 7, Name: "Running", DurationMinutes: 45}))
	require.NoError(t, store.Create(&model.Activity{UserID: 8, Name: "Cycling", DurationMinutes: 60}))
	service := NewActivityService(store, nil, nil)

	got, err := service.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, uint(7), got[0].UserID)
}

func TestSummaryAggregates(t *testing.T) {
	store := newFakeActivityStore()
	day1 := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(&model.Activity{UserID: 7, Name: "Running", DurationMinutes: 45, Date: day1}))
	require.NoError(t, store.Create(&model.Activity{UserID: 7, Name: "Cycling", DurationMinutes: 60, Date: day1}))
	require.NoError(t, store.Create(&model.Activity{UserID: 7, Name: "Swimming", DurationMinutes: 30, Date: day2}))
	service := NewActivityService(store, nil, nil)

	summary, err := service.Summary(context.Background(), 7, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalActivities)
	require.Equal(t, 135, summary.TotalMinutes)
	require.Equal(t, 2, summary.ActiveDays)
}
