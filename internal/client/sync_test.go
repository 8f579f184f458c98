package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azaliaz/feedbackhub/internal/client/cache"
	"github.com/azaliaz/feedbackhub/internal/domain/models"
)

var errUnreachable = errors.New("connection refused")

type stubService struct {
	list   func(ctx context.Context) ([]models.Feedback, error)
	create func(ctx context.Context, payload models.FeedbackPayload) (models.Feedback, error)
	update func(ctx context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, error)
	delete func(ctx context.Context, fid string) error
}

func (s *stubService) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return s.list(ctx)
}

func (s *stubService) CreateFeedback(ctx context.Context, payload models.FeedbackPayload) (models.Feedback, error) {
	return s.create(ctx, payload)
}

func (s *stubService) UpdateFeedback(ctx context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, error) {
	return s.update(ctx, fid, payload)
}

func (s *stubService) DeleteFeedback(ctx context.Context, fid string) error {
	return s.delete(ctx, fid)
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(key string) ([]byte, error) {
	value, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return value, nil
}

func (c *memCache) Set(key string, value []byte) error {
	c.data[key] = value
	return nil
}

func (c *memCache) snapshot(t *testing.T) []models.Feedback {
	data, ok := c.data[cache.FeedbackKey]
	require.True(t, ok, "no snapshot in cache")
	var feedbacks []models.Feedback
	require.NoError(t, json.Unmarshal(data, &feedbacks))
	return feedbacks
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.errors = append(n.errors, msg)
}

func serverList() []models.Feedback {
	now := time.Now().UTC()
	return []models.Feedback{
		{ID: "b", Name: "Bo", Email: "bo@x.com", Feedback: "second", CreatedAt: now, UpdatedAt: now},
		{ID: "a", Name: "Al", Email: "al@x.com", Feedback: "first", CreatedAt: now.Add(-time.Minute), UpdatedAt: now.Add(-time.Minute)},
	}
}

func TestSynchronizer_LoadSuccess(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return serverList(), nil },
	}
	fallback := newMemCache()
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, fallback, notify)
	assert.Equal(t, StateLoading, sync.State())

	sync.Load(context.Background())

	assert.Equal(t, StateReady, sync.State())
	require.Len(t, sync.Feedbacks(), 2)
	assert.Equal(t, "b", sync.Feedbacks()[0].ID)
	assert.Len(t, fallback.snapshot(t), 2)
	assert.Empty(t, notify.errors)
}

func TestSynchronizer_LoadFailureFallsBackToCache(t *testing.T) {
	fallback := newMemCache()
	data, err := json.Marshal(serverList())
	require.NoError(t, err)
	require.NoError(t, fallback.Set(cache.FeedbackKey, data))

	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return nil, errUnreachable },
	}
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, fallback, notify)

	sync.Load(context.Background())

	assert.Equal(t, StateReady, sync.State())
	assert.Len(t, sync.Feedbacks(), 2)
	assert.Equal(t, []string{"failed to load feedbacks"}, notify.errors)
}

func TestSynchronizer_LoadFailureWithoutCache(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return nil, errUnreachable },
	}
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, newMemCache(), notify)

	sync.Load(context.Background())

	assert.Equal(t, StateReady, sync.State())
	assert.Empty(t, sync.Feedbacks())
	assert.Len(t, notify.errors, 1)
}

func TestSynchronizer_CreateSuccess(t *testing.T) {
	now := time.Now().UTC()
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return nil, nil },
		create: func(_ context.Context, payload models.FeedbackPayload) (models.Feedback, error) {
			return models.Feedback{
				ID:        "server-id",
				Name:      payload.Name,
				Email:     payload.Email,
				Feedback:  payload.Feedback,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
	}
	fallback := newMemCache()
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, fallback, notify)
	sync.Load(context.Background())

	created, ok := sync.Create(context.Background(), models.FeedbackPayload{Name: "Al", Email: "al@x.com", Feedback: "hi"})

	require.True(t, ok)
	assert.Equal(t, "server-id", created.ID)
	require.Len(t, sync.Feedbacks(), 1)
	assert.Equal(t, "server-id", sync.Feedbacks()[0].ID)
	assert.Len(t, fallback.snapshot(t), 1)
}

func TestSynchronizer_CreateFailureSynthesizesLocally(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return nil, nil },
		create: func(context.Context, models.FeedbackPayload) (models.Feedback, error) {
			return models.Feedback{}, errUnreachable
		},
	}
	fallback := newMemCache()
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, fallback, notify)
	sync.Load(context.Background())

	created, ok := sync.Create(context.Background(), models.FeedbackPayload{Name: "Al", Email: "al@x.com", Feedback: "hi"})

	require.True(t, ok)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Al", created.Name)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	require.Len(t, sync.Feedbacks(), 1)
	assert.Len(t, fallback.snapshot(t), 1)
	assert.Contains(t, notify.successes, "feedback saved locally (offline mode)")
}

func TestSynchronizer_CreateRejectionAppliesNothing(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return nil, nil },
		create: func(context.Context, models.FeedbackPayload) (models.Feedback, error) {
			return models.Feedback{}, &APIError{Status: http.StatusBadRequest, Reason: "invalid email format"}
		},
	}
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, newMemCache(), notify)
	sync.Load(context.Background())

	_, ok := sync.Create(context.Background(), models.FeedbackPayload{Name: "Al", Email: "nope", Feedback: "hi"})

	assert.False(t, ok)
	assert.Empty(t, sync.Feedbacks())
	assert.Equal(t, []string{"invalid email format"}, notify.errors)
}

func TestSynchronizer_UpdateSuccessReplacesRecord(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return serverList(), nil },
		update: func(_ context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, error) {
			return models.Feedback{ID: fid, Name: payload.Name, Email: payload.Email, Feedback: payload.Feedback, UpdatedAt: time.Now().UTC()}, nil
		},
	}
	sync := NewSynchronizer(svc, newMemCache(), &recordingNotifier{})
	sync.Load(context.Background())

	updated, ok := sync.Update(context.Background(), "a", models.FeedbackPayload{Name: "Al2", Email: "al@x.com", Feedback: "hi2"})

	require.True(t, ok)
	assert.Equal(t, "a", updated.ID)
	feedbacks := sync.Feedbacks()
	require.Len(t, feedbacks, 2)
	assert.Equal(t, "Al2", feedbacks[1].Name)
}

func TestSynchronizer_UpdateFailurePatchesLocally(t *testing.T) {
	svc := &stubService{
		list: func(context.Context) ([]models.Feedback, error) { return serverList(), nil },
		update: func(context.Context, string, models.FeedbackPayload) (models.Feedback, error) {
			return models.Feedback{}, errUnreachable
		},
	}
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, newMemCache(), notify)
	sync.Load(context.Background())
	before, found := func() (models.Feedback, bool) {
		for _, fb := range sync.Feedbacks() {
			if fb.ID == "a" {
				return fb, true
			}
		}
		return models.Feedback{}, false
	}()
	require.True(t, found)

	updated, ok := sync.Update(context.Background(), "a", models.FeedbackPayload{Name: "Al2", Email: "al@x.com", Feedback: "hi2"})

	require.True(t, ok)
	assert.Equal(t, "a", updated.ID)
	assert.Equal(t, "Al2", updated.Name)
	assert.True(t, before.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	assert.Contains(t, notify.successes, "feedback updated locally (offline mode)")
}

func TestSynchronizer_DeleteAlwaysRemoves(t *testing.T) {
	deleteErr := error(nil)
	svc := &stubService{
		list:   func(context.Context) ([]models.Feedback, error) { return serverList(), nil },
		delete: func(context.Context, string) error { return deleteErr },
	}
	notify := &recordingNotifier{}
	sync := NewSynchronizer(svc, newMemCache(), notify)
	sync.Load(context.Background())

	sync.Delete(context.Background(), "a")
	require.Len(t, sync.Feedbacks(), 1)

	deleteErr = errUnreachable
	sync.Delete(context.Background(), "b")
	assert.Empty(t, sync.Feedbacks())
	assert.Contains(t, notify.successes, "feedback deleted locally (offline mode)")
}

func TestSynchronizer_EmptyListNeverClobbersSnapshot(t *testing.T) {
	svc := &stubService{
		list:   func(context.Context) ([]models.Feedback, error) { return serverList(), nil },
		delete: func(context.Context, string) error { return nil },
	}
	fallback := newMemCache()
	sync := NewSynchronizer(svc, fallback, &recordingNotifier{})
	sync.Load(context.Background())

	sync.Delete(context.Background(), "a")
	sync.Delete(context.Background(), "b")

	assert.Empty(t, sync.Feedbacks())
	// snapshot keeps the state from the last non-empty reconciliation
	assert.Len(t, fallback.snapshot(t), 1)
}
