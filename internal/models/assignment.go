package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusAvailable  = "available"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

var AssignmentStatuses = []string{StatusAvailable, StatusInProgress, StatusCompleted, StatusCanceled}

var ReferenceStyles = []string{"APA", "MLA", "Chicago", "Harvard"}

func ValidReferenceStyle(style string) bool {
	for _, s := range ReferenceStyles {
		if s == style {
			return true
		}
	}
	return false
}

func ValidAssignmentStatus(status string) bool {
	for _, s := range AssignmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Assignment struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PriceTag       float64   `json:"price_tag"`
	Pages          int       `json:"pages"`
	ReferenceStyle string    `json:"reference_style"`
	DueDate        time.Time `json:"due_date"`
	Status         string    `json:"status"`
	UserID         uuid.UUID `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TimeLeft reports the remaining time until the due date at minute
// granularity, or "Assignment overdue" once the due date has passed.
func (a *Assignment) TimeLeft(now time.Time) string {
	if !a.DueDate.After(now) {
		return "Assignment overdue"
	}
	delta := a.DueDate.Sub(now)
	days := int(delta.Hours()) / 24
	hours := int(delta.Hours()) % 24
	minutes := int(delta.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}

// AssignmentView is the wire shape of an assignment, carrying the derived
// time_left string alongside the persisted fields.
type AssignmentView struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PriceTag       float64   `json:"price_tag"`
	Pages          int       `json:"pages"`
	ReferenceStyle string    `json:"reference_style"`
	DueDate        string    `json:"due_date"`
	Status         string    `json:"status"`
	UserID         uuid.UUID `json:"user_id"`
	TimeLeft       string    `json:"time_left"`
}

func (a *Assignment) View(now time.Time) AssignmentView {
	return AssignmentView{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		PriceTag:       a.PriceTag,
		Pages:          a.Pages,
		ReferenceStyle: a.ReferenceStyle,
		DueDate:        a.DueDate.Format(time.RFC3339),
		Status:         a.Status,
		UserID:         a.UserID,
		TimeLeft:       a.TimeLeft(now),
	}
}
