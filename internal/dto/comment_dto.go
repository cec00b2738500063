package dto

import (
	"time"

	"github.com/google/uuid"
)

// CommentResponse is the API representation of a collected YouTube comment
type CommentResponse struct {
	ID          uuid.UUID `json:"id"`
	VideoID     uuid.UUID `json:"video_id"`
	UserID      uuid.UUID `json:"user_id"`
	AuthorName  string    `json:"author_name"`
	CommentText string    `json:"comment_text"`
	LikeCount   int       `json:"like_count"`
	IsUsed      bool      `json:"is_used"`
	VideoTitle  string    `json:"video_title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentFilters holds optional filters for comment listing
type CommentFilters struct {
	VideoID *uuid.UUID
	IsUsed  *bool
	Limit   int
	Offset  int
}

// VideoResponse is the API representation of a video with collected comments
type VideoResponse struct {
	ID           uuid.UUID `json:"id"`
	YouTubeID    string    `json:"youtube_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	CommentCount int64     `json:"comment_count"`
	UnusedCount  int64     `json:"unused_count"`
	CreatedAt    time.Time `json:"created_at"`
}
