package models

import "time"

// Wish is a user-authored short-term goal.
type Wish struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	WeekAnchor string    `json:"week_anchor,omitempty"` // YYYY-MM-DD format
}

// VentLog is an append-only emotional log entry. Entries are never edited or
// deleted.
type VentLog struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Mood           string    `json:"mood,omitempty"`
	Feedback       string    `json:"feedback,omitempty"`
	SentimentScore float64   `json:"sentiment_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type TimelineEventType string

const (
	TimelineEventMission TimelineEventType = "mission"
	TimelineEventVent    TimelineEventType = "vent"
	TimelineEventWish    TimelineEventType = "wish"
)

// TimelineEvent is one entry of the derived activity feed. The feed keeps the
// most recent entries first and is bounded to MaxTimelineEvents.
type TimelineEvent struct {
	ID        string            `json:"id"`
	Type      TimelineEventType `json:"type"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"created_at"`
}

// MaxTimelineEvents bounds the derived activity feed.
const MaxTimelineEvents = 50
