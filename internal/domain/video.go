package domain

// Video represents a YouTube video whose comments have been collected
type Video struct {
	BaseModel
	YouTubeID    string         `gorm:"type:varchar(32);not null;uniqueIndex:uq_videos_youtube_id" json:"youtube_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	ChannelTitle string         `gorm:"type:varchar(255)" json:"channel_title"`
	Comments     []VideoComment `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for Video
func (Video) TableName() string {
	return "videos"
}
