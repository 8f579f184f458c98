package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/azaliaz/feedbackhub/internal/client/cache"
	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
)

type State int

const (
	StateLoading State = iota
	StateReady
)

// Service is the server boundary the synchronizer reconciles against.
type Service interface {
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, payload models.FeedbackPayload) (models.Feedback, error)
	UpdateFeedback(ctx context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, error)
	DeleteFeedback(ctx context.Context, fid string) error
}

// Notifier is the transient sink for user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Synchronizer holds the client's view of the feedback list and reconciles
// every service response into it. The server copy wins on success; on
// unreachable-service failures the list falls back to locally synthesized
// state so user input is never lost. Not safe for concurrent use.
type Synchronizer struct {
	svc    Service
	cache  cache.Cache
	notify Notifier

	state     State
	feedbacks []models.Feedback
}

func NewSynchronizer(svc Service, fallback cache.Cache, notify Notifier) *Synchronizer {
	return &Synchronizer{
		svc:    svc,
		cache:  fallback,
		notify: notify,
		state:  StateLoading,
	}
}

func (s *Synchronizer) State() State {
	return s.state
}

// Feedbacks returns a copy of the reconciled in-memory list.
func (s *Synchronizer) Feedbacks() []models.Feedback {
	out := make([]models.Feedback, len(s.feedbacks))
	copy(out, s.feedbacks)
	return out
}

// Load fetches the full list. On success the server result replaces both the
// in-memory list and the fallback snapshot; on failure the last snapshot is
// restored when one exists, since stale data beats an empty screen.
func (s *Synchronizer) Load(ctx context.Context) {
	log := logger.Get()
	s.state = StateLoading

	feedbacks, err := s.svc.ListFeedback(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load feedbacks")
		s.notify.Error("failed to load feedbacks")
		if cached, ok := s.readCache(); ok {
			s.feedbacks = cached
		}
		s.state = StateReady
		return
	}

	s.feedbacks = feedbacks
	s.writeCache()
	s.state = StateReady
}

// Create submits a new feedback. A validation rejection is surfaced verbatim
// and applies nothing; any other failure synthesizes a locally identified
// record so the input survives. Returns the reconciled record and whether one
// was applied.
func (s *Synchronizer) Create(ctx context.Context, payload models.FeedbackPayload) (models.Feedback, bool) {
	created, err := s.svc.CreateFeedback(ctx, payload)
	switch {
	case err == nil:
		s.notify.Success("feedback created successfully")
	case rejected(err):
		s.notify.Error(reason(err))
		return models.Feedback{}, false
	default:
		now := time.Now().UTC()
		created = models.Feedback{
			ID:        uuid.New().String(),
			Name:      payload.Name,
			Email:     payload.Email,
			Feedback:  payload.Feedback,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.notify.Success("feedback saved locally (offline mode)")
	}

	s.feedbacks = append(s.feedbacks, created)
	s.syncCache()
	return created, true
}

// Update submits a patch for an existing record. On failure the patch is
// applied locally with a client-side timestamp to keep the view responsive.
func (s *Synchronizer) Update(ctx context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, bool) {
	updated, err := s.svc.UpdateFeedback(ctx, fid, payload)
	switch {
	case err == nil:
		s.notify.Success("feedback updated successfully")
	case rejected(err):
		s.notify.Error(reason(err))
		return models.Feedback{}, false
	default:
		existing, ok := s.find(fid)
		if !ok {
			s.notify.Error("feedback not found")
			return models.Feedback{}, false
		}
		updated = existing
		updated.Name = payload.Name
		updated.Email = payload.Email
		updated.Feedback = payload.Feedback
		updated.UpdatedAt = time.Now().UTC()
		s.notify.Success("feedback updated locally (offline mode)")
	}

	s.replace(fid, updated)
	s.syncCache()
	return updated, true
}

// Delete removes a record. The removal is honored client-side whether or not
// the server call succeeds: there is no durable undo path, so a failed delete
// falls back to local removal rather than resurrecting the record.
func (s *Synchronizer) Delete(ctx context.Context, fid string) {
	err := s.svc.DeleteFeedback(ctx, fid)
	if err == nil {
		s.notify.Success("feedback deleted successfully")
	} else {
		s.notify.Success("feedback deleted locally (offline mode)")
	}

	s.remove(fid)
	s.syncCache()
}

func (s *Synchronizer) find(fid string) (models.Feedback, bool) {
	for _, feedback := range s.feedbacks {
		if feedback.ID == fid {
			return feedback, true
		}
	}
	return models.Feedback{}, false
}

func (s *Synchronizer) replace(fid string, feedback models.Feedback) {
	for i := range s.feedbacks {
		if s.feedbacks[i].ID == fid {
			s.feedbacks[i] = feedback
			return
		}
	}
}

func (s *Synchronizer) remove(fid string) {
	kept := s.feedbacks[:0]
	for _, feedback := range s.feedbacks {
		if feedback.ID != fid {
			kept = append(kept, feedback)
		}
	}
	s.feedbacks = kept
}

func (s *Synchronizer) readCache() ([]models.Feedback, bool) {
	log := logger.Get()
	data, err := s.cache.Get(cache.FeedbackKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Msg("failed to read fallback cache")
		}
		return nil, false
	}
	var feedbacks []models.Feedback
	if err := json.Unmarshal(data, &feedbacks); err != nil {
		log.Warn().Err(err).Msg("corrupt fallback cache")
		return nil, false
	}
	return feedbacks, true
}

func (s *Synchronizer) writeCache() {
	log := logger.Get()
	data, err := json.Marshal(s.feedbacks)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal feedbacks")
		return
	}
	if err := s.cache.Set(cache.FeedbackKey, data); err != nil {
		log.Warn().Err(err).Msg("failed to write fallback cache")
	}
}

// syncCache refreshes the snapshot after a mutation, but only while there is
// something to keep: an empty list never clobbers the last known-good copy.
func (s *Synchronizer) syncCache() {
	if len(s.feedbacks) == 0 {
		return
	}
	s.writeCache()
}

// rejected reports whether the service refused the payload outright. Those
// responses are surfaced verbatim and never retried or applied locally.
func rejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

func reason(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Reason != "" {
		return apiErr.Reason
	}
	return err.Error()
}
