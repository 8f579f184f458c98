package storage

import (
	"sort"

	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
	storerrors "github.com/azaliaz/feedbackhub/internal/storage/errors"
)

type MemStorage struct {
	feedbackStor map[string]models.Feedback
}

func New() *MemStorage {
	return &MemStorage{
		feedbackStor: make(map[string]models.Feedback),
	}
}

func (ms *MemStorage) SaveFeedback(feedback models.Feedback) error {
	if _, exists := ms.feedbackStor[feedback.ID]; exists {
		return storerrors.ErrFeedbackExists
	}
	ms.feedbackStor[feedback.ID] = feedback
	return nil
}

func (ms *MemStorage) GetFeedback(fid string) (models.Feedback, error) {
	feedback, ok := ms.feedbackStor[fid]
	if !ok {
		return models.Feedback{}, storerrors.ErrFeedbackNotFound
	}
	return feedback, nil
}

// GetFeedbacks returns all records, newest first.
func (ms *MemStorage) GetFeedbacks() ([]models.Feedback, error) {
	feedbacks := make([]models.Feedback, 0, len(ms.feedbackStor))
	for _, feedback := range ms.feedbackStor {
		feedbacks = append(feedbacks, feedback)
	}
	sort.Slice(feedbacks, func(i, j int) bool {
		return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt)
	})
	return feedbacks, nil
}

func (ms *MemStorage) UpdateFeedback(feedback models.Feedback) error {
	stored, exists := ms.feedbackStor[feedback.ID]
	if !exists {
		return storerrors.ErrFeedbackNotFound
	}
	feedback.CreatedAt = stored.CreatedAt
	ms.feedbackStor[feedback.ID] = feedback
	return nil
}

func (ms *MemStorage) DeleteFeedback(fid string) error {
	log := logger.Get()
	if _, exists := ms.feedbackStor[fid]; !exists {
		log.Warn().Str("fid", fid).Msg("feedback not found")
		return storerrors.ErrFeedbackNotFound
	}
	delete(ms.feedbackStor, fid)
	log.Info().Str("fid", fid).Msg("feedback deleted successfully")
	return nil
}
