package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/azaliaz/feedbackhub/internal/domain/models"
)

const defaultTimeout = 10 * time.Second

// APIError is a response the service rejected: the envelope came back with
// success=false. Transport failures stay ordinary errors.
type APIError struct {
	Status int
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Reason)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// APIClient talks to the feedback service over HTTP.
type APIClient struct {
	http    *http.Client
	baseURL string
}

func NewAPI(baseURL string, timeout time.Duration) *APIClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &APIClient{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *APIClient) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	env, err := c.do(ctx, http.MethodGet, "/feedback", nil)
	if err != nil {
		return nil, err
	}
	var feedbacks []models.Feedback
	if err := json.Unmarshal(env.Data, &feedbacks); err != nil {
		return nil, fmt.Errorf("decode feedback list: %w", err)
	}
	return feedbacks, nil
}

func (c *APIClient) CreateFeedback(ctx context.Context, payload models.FeedbackPayload) (models.Feedback, error) {
	env, err := c.do(ctx, http.MethodPost, "/feedback", payload)
	if err != nil {
		return models.Feedback{}, err
	}
	return decodeFeedback(env)
}

func (c *APIClient) GetFeedback(ctx context.Context, fid string) (models.Feedback, error) {
	env, err := c.do(ctx, http.MethodGet, "/feedback/"+fid, nil)
	if err != nil {
		return models.Feedback{}, err
	}
	return decodeFeedback(env)
}

func (c *APIClient) UpdateFeedback(ctx context.Context, fid string, payload models.FeedbackPayload) (models.Feedback, error) {
	env, err := c.do(ctx, http.MethodPut, "/feedback/"+fid, payload)
	if err != nil {
		return models.Feedback{}, err
	}
	return decodeFeedback(env)
}

func (c *APIClient) DeleteFeedback(ctx context.Context, fid string) error {
	_, err := c.do(ctx, http.MethodDelete, "/feedback/"+fid, nil)
	return err
}

func (c *APIClient) do(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return envelope{}, &APIError{Status: resp.StatusCode, Reason: env.Error}
	}
	return env, nil
}

func decodeFeedback(env envelope) (models.Feedback, error) {
	var feedback models.Feedback
	if err := json.Unmarshal(env.Data, &feedback); err != nil {
		return models.Feedback{}, fmt.Errorf("decode feedback: %w", err)
	}
	return feedback, nil
}
