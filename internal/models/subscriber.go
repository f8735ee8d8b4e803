package models

import "time"

// Subscriber represents a newsletter subscription
type Subscriber struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubscribeRequest is the POST /api/subscribe payload
type SubscribeRequest struct {
	Email string `json:"email"`
}
