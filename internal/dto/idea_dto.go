package dto

import (
	"time"

	"github.com/google/uuid"
)

// IdeaResponse is the API representation of a generated idea
type IdeaResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	VideoID       uuid.UUID `json:"video_id"`
	CommentID     uuid.UUID `json:"comment_id"`
	Score         int       `json:"score"`
	VideoTitle    string    `json:"video_title"`
	Description   string    `json:"description"`
	ResearchLinks []string  `json:"research_links"`
	CreatedAt     time.Time `json:"created_at"`
}

// IdeaDetailResponse is the detailed representation including the video and
// the source comment
type IdeaDetailResponse struct {
	IdeaResponse
	Video   *VideoResponse   `json:"video,omitempty"`
	Comment *CommentResponse `json:"comment,omitempty"`
}

// GenerateIdeasResponse is returned by the idea generation endpoint
type GenerateIdeasResponse struct {
	Ideas            []*IdeaResponse `json:"ideas"`
	CommentsConsumed int             `json:"comments_consumed"`
}

// IdeaFilters holds optional pagination for idea listing
type IdeaFilters struct {
	Limit  int
	Offset int
}

// ExportResponse is returned by the idea export endpoint
type ExportResponse struct {
	FileKey     string    `json:"file_key"`
	DownloadURL string    `json:"download_url"`
	IdeaCount   int       `json:"idea_count"`
	ExpiresAt   time.Time `json:"expires_at"`
}
