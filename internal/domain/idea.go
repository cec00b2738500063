package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Idea represents a generated video-content suggestion derived from a comment
type Idea struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_ideas_user_id" json:"user_id"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index:idx_ideas_video_id" json:"video_id"`
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_ideas_comment_id" json:"comment_id"`
	// Score is the model-assigned quality score, clamped to 0-100.
	Score       int            `gorm:"not null;default:0" json:"score"`
	VideoTitle  string         `gorm:"type:varchar(255);not null" json:"video_title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	// ResearchLinks holds supporting research URLs as a jsonb string array.
	ResearchLinks datatypes.JSON `gorm:"type:jsonb" json:"research_links"`
	Video         Video          `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	Comment       VideoComment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"comment,omitempty"`
}

// TableName specifies the table name for Idea
func (Idea) TableName() string {
	return "ideas"
}
