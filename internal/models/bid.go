package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BidPending  = "pending"
	BidAccepted = "accepted"
	BidRejected = "rejected"
)

type Bid struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// BidView enriches a bid with the bidder name and assignment title for
// listing responses.
type BidView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	User            string    `json:"user"`
	AssignmentID    uuid.UUID `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
