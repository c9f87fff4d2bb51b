package model

import "time"

const MaxCommentLength = 1000

type Comment struct {
	ID        string    `gorm:"primaryKey;size:32" bson:"_id" json:"id"`
	UserID    string    `gorm:"index;not null;size:32" bson:"userId" json:"userId"`
	Username  string    `gorm:"not null" bson:"username" json:"username"`
	MediaID   int       `gorm:"index:idx_comment_media;not null" bson:"mediaId" json:"mediaId"`
	MediaType MediaType `gorm:"index:idx_comment_media;not null;size:8" bson:"mediaType" json:"mediaType"`
	Text      string    `gorm:"not null;size:4000" bson:"text" json:"text"`
	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
