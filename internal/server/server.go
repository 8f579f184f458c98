package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/azaliaz/feedbackhub/internal/config"
	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
	"github.com/azaliaz/feedbackhub/internal/metrics"
	"github.com/azaliaz/feedbackhub/internal/validation"
)

type Storage interface {
	SaveFeedback(models.Feedback) error
	GetFeedback(string) (models.Feedback, error)
	GetFeedbacks() ([]models.Feedback, error)
	UpdateFeedback(models.Feedback) error
	DeleteFeedback(string) error
}

type Server struct {
	serv    *http.Server
	valid   *validator.Validate
	storage Storage
	ErrChan chan error
}

func New(cfg config.Config, stor Storage) *Server {
	server := http.Server{ //nolint:gosec // not today
		Addr: cfg.Addr,
	}
	return &Server{
		serv:    &server,
		valid:   validation.New(),
		storage: stor,
		ErrChan: make(chan error),
	}
}

func (s *Server) ShutdownServer() error {
	return s.serv.Shutdown(context.Background())
}

func (s *Server) Run(ctx context.Context) error {
	log := logger.Get()
	router := gin.Default()
	router.Use(metricsMiddleware())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	feedback := router.Group("/feedback")
	{
		feedback.POST("", s.CreateFeedback)
		feedback.GET("", s.ListFeedback)
		feedback.GET("/:id", s.GetFeedback)
		feedback.PUT("/:id", s.UpdateFeedback)
		feedback.DELETE("/:id", s.DeleteFeedback)
	}

	s.serv.Handler = router
	log.Info().Str("host", s.serv.Addr).Msg("server started")
	if err := s.serv.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Close() error {
	return s.serv.Shutdown(context.TODO())
}

func metricsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		metrics.ObserveRequest(ctx.Request.Method+" "+ctx.FullPath(), start, ctx.Writer.Status())
	}
}
