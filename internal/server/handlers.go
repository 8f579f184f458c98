package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
	storerrors "github.com/azaliaz/feedbackhub/internal/storage/errors"
	"github.com/azaliaz/feedbackhub/internal/validation"
)

func (s *Server) CreateFeedback(ctx *gin.Context) {
	log := logger.Get()
	var payload models.FeedbackPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	payload, err := validation.Check(s.valid, payload)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	now := time.Now().UTC()
	feedback := models.Feedback{
		ID:        uuid.New().String(),
		Name:      payload.Name,
		Email:     payload.Email,
		Feedback:  payload.Feedback,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveFeedback(feedback); err != nil {
		log.Error().Err(err).Msg("save feedback failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save feedback"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "feedback created successfully",
		"data":    feedback,
	})
}

func (s *Server) ListFeedback(ctx *gin.Context) {
	log := logger.Get()
	feedbacks, err := s.storage.GetFeedbacks()
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get feedbacks"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": feedbacks})
}

func (s *Server) GetFeedback(ctx *gin.Context) {
	fid := ctx.Param("id")
	if fid == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "feedback ID is required"})
		return
	}

	feedback, err := s.storage.GetFeedback(fid)
	if err != nil {
		if errors.Is(err, storerrors.ErrFeedbackNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "feedback not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get feedback"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": feedback})
}

func (s *Server) UpdateFeedback(ctx *gin.Context) {
	log := logger.Get()
	fid := ctx.Param("id")
	if fid == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "feedback ID is required"})
		return
	}

	var payload models.FeedbackPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	payload, err := validation.Check(s.valid, payload)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	existing, err := s.storage.GetFeedback(fid)
	if err != nil {
		if errors.Is(err, storerrors.ErrFeedbackNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "feedback not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get feedback")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to get feedback"})
		return
	}

	existing.Name = payload.Name
	existing.Email = payload.Email
	existing.Feedback = payload.Feedback
	existing.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateFeedback(existing); err != nil {
		if errors.Is(err, storerrors.ErrFeedbackNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "feedback not found"})
			return
		}
		log.Error().Err(err).Msg("failed to update feedback")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update feedback"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "feedback updated successfully",
		"data":    existing,
	})
}

func (s *Server) DeleteFeedback(ctx *gin.Context) {
	log := logger.Get()
	fid := ctx.Param("id")
	if fid == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "feedback ID is required"})
		return
	}

	if err := s.storage.DeleteFeedback(fid); err != nil {
		if errors.Is(err, storerrors.ErrFeedbackNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "feedback not found"})
			return
		}
		log.Error().Err(err).Msg("failed to delete feedback")
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete feedback"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "feedback deleted successfully"})
}
