package domain

import "github.com/google/uuid"

// VideoComment represents a collected YouTube comment awaiting or having been
// consumed by idea generation
type VideoComment struct {
	BaseModel
	VideoID     uuid.UUID `gorm:"type:uuid;not null;index:idx_video_comments_video_id" json:"video_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_video_comments_user_id" json:"user_id"`
	AuthorName  string    `gorm:"type:varchar(255)" json:"author_name"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	LikeCount   int       `gorm:"default:0" json:"like_count"`
	// IsUsed is flipped to true once the comment has been consumed by a
	// generation run, preventing reuse.
	IsUsed bool  `gorm:"not null;default:false;index:idx_video_comments_is_used" json:"is_used"`
	Video  Video `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
}

// TableName specifies the table name for VideoComment
func (VideoComment) TableName() string {
	return "video_comments"
}
