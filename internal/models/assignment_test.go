package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAssignment_TimeLeft(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueDate time.Time
		want    string
	}{
		{
			name:    "days_hours_minutes",
			dueDate: now.Add(26*time.Hour + 15*time.Minute),
			want:    "1 days, 2 hours, 15 minutes",
		},
		{
			name:    "hours_minutes",
			dueDate: now.Add(3*time.Hour + 5*time.Minute),
			want:    "3 hours, 5 minutes",
		},
		{
			name:    "minutes_only",
			dueDate: now.Add(42 * time.Minute),
			want:    "42 minutes",
		},
		{
			name:    "overdue",
			dueDate: now.Add(-time.Hour),
			want:    "Assignment overdue",
		},
		{
			name:    "exactly_now",
			dueDate: now,
			want:    "Assignment overdue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Assignment{DueDate: tt.dueDate}
			require.Equal(t, tt.want, a.TimeLeft(now))
		})
	}
}

func TestAssignment_View(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Assignment{
		Title:          "T",
		Description:    "D",
		PriceTag:       20.5,
		Pages:          3,
		ReferenceStyle: "APA",
		DueDate:        now.Add(48 * time.Hour),
		Status:         StatusAvailable,
	}

	view := a.View(now)
	require.Equal(t, "T", view.Title)
	require.Equal(t, "D", view.Description)
	require.Equal(t, 20.5, view.PriceTag)
	require.Equal(t, 3, view.Pages)
	require.Equal(t, "APA", view.ReferenceStyle)
	require.Equal(t, StatusAvailable, view.Status)
	require.Contains(t, view.TimeLeft, "2 days")
}

func TestValidRole(t *testing.T) {
	for _, role := range Roles {
		require.True(t, ValidRole(role))
	}
	require.False(t, ValidRole("superadmin"))
	require.False(t, ValidRole(""))
}

func TestValidReferenceStyle(t *testing.T) {
	for _, style := range ReferenceStyles {
		require.True(t, ValidReferenceStyle(style))
	}
	require.False(t, ValidReferenceStyle("IEEE"))
}
