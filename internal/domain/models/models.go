package models

import "time"

type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeedbackPayload is the submission body shared by create and update.
type FeedbackPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,feedback_email"`
	Feedback string `json:"feedback" validate:"required,max=1000"`
}
