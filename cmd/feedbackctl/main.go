// Package main implements the feedbackctl CLI, a terminal front end for the
// feedback service built on the client synchronizer: it works against the
// server when it is reachable and against the local fallback cache when not.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/azaliaz/feedbackhub/internal/client"
	"github.com/azaliaz/feedbackhub/internal/client/cache"
	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
)

type Config struct {
	APIURL    string        `envconfig:"FEEDBACK_API_URL" default:"http://localhost:8080"`
	CacheDir  string        `envconfig:"FEEDBACK_CACHE_DIR" default:".feedbackctl"`
	RedisAddr string        `envconfig:"REDIS_ADDR"`
	Timeout   time.Duration `envconfig:"FEEDBACK_TIMEOUT" default:"10s"`
}

var (
	flagName     string
	flagEmail    string
	flagFeedback string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "CLI for the feedback service",
	Long: `feedbackctl submits, lists, edits and deletes feedback entries.

Mutations are applied optimistically: when the server is unreachable they are
kept locally so input is never lost. The last known-good list is cached under
FEEDBACK_CACHE_DIR (or in Redis when REDIS_ADDR is set).`,
}

func init() {
	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().StringVar(&flagName, "name", "", "submitter name")
		cmd.Flags().StringVar(&flagEmail, "email", "", "submitter email")
		cmd.Flags().StringVar(&flagFeedback, "feedback", "", "feedback text")
	}
	rootCmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feedback entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sync, err := newSynchronizer()
		if err != nil {
			return err
		}
		sync.Load(cmd.Context())
		printFeedbacks(sync.Feedbacks())
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a single feedback entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}
		api := client.NewAPI(cfg.APIURL, cfg.Timeout)
		feedback, err := api.GetFeedback(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printFeedbacks([]models.Feedback{feedback})
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new feedback entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		sync, err := newSynchronizer()
		if err != nil {
			return err
		}
		sync.Load(cmd.Context())
		created, ok := sync.Create(cmd.Context(), models.FeedbackPayload{
			Name:     flagName,
			Email:    flagEmail,
			Feedback: flagFeedback,
		})
		if !ok {
			os.Exit(1)
		}
		printFeedbacks([]models.Feedback{created})
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit an existing feedback entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sync, err := newSynchronizer()
		if err != nil {
			return err
		}
		sync.Load(cmd.Context())
		updated, ok := sync.Update(cmd.Context(), args[0], models.FeedbackPayload{
			Name:     flagName,
			Email:    flagEmail,
			Feedback: flagFeedback,
		})
		if !ok {
			os.Exit(1)
		}
		printFeedbacks([]models.Feedback{updated})
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a feedback entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sync, err := newSynchronizer()
		if err != nil {
			return err
		}
		sync.Load(cmd.Context())
		sync.Delete(cmd.Context(), args[0])
		return nil
	},
}

func readConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newSynchronizer() (*client.Synchronizer, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	api := client.NewAPI(cfg.APIURL, cfg.Timeout)

	var fallback cache.Cache
	if cfg.RedisAddr != "" {
		fallback = cache.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		fallback = cache.NewFile(cfg.CacheDir)
	}

	return client.NewSynchronizer(api, fallback, logNotifier{}), nil
}

type logNotifier struct{}

func (logNotifier) Success(msg string) {
	log := logger.Get()
	log.Info().Msg(msg)
}

func (logNotifier) Error(msg string) {
	log := logger.Get()
	log.Error().Msg(msg)
}

func printFeedbacks(feedbacks []models.Feedback) {
	for _, fb := range feedbacks {
		fmt.Printf("%s\t%s\t%s\t%s\n\t%s\n", fb.ID, fb.Name, fb.Email, fb.UpdatedAt.Format(time.RFC3339), fb.Feedback)
	}
}
