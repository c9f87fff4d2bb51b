package model

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 10
)

type Rating struct {
	ID        string    `gorm:"primaryKey;size:32" bson:"_id" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_rating_owner;not null;size:32" bson:"userId" json:"userId"`
	MediaID   int       `gorm:"uniqueIndex:idx_rating_owner;index:idx_rating_media;not null" bson:"mediaId" json:"mediaId"`
	MediaType MediaType `gorm:"uniqueIndex:idx_rating_owner;index:idx_rating_media;not null;size:8" bson:"mediaType" json:"mediaType"`
	Rating    int       `gorm:"not null" bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RatingSummary aggregates every rating of one media item. Average is nil
// when nobody rated it yet.
type RatingSummary struct {
	MediaID   int       `json:"mediaId"`
	MediaType MediaType `json:"mediaType"`
	Average   *float64  `json:"average"`
	Count     int       `json:"count"`
}

// NewRatingSummary builds a summary out of a sum and a count, rounding the
// mean to one decimal place
func NewRatingSummary(mediaID int, mediaType MediaType, sum float64, count int) RatingSummary {
	s := RatingSummary{
		MediaID:   mediaID,
		MediaType: mediaType,
		Count:     count,
	}

	if count > 0 {
		avg := math.Round(sum/float64(count)*10) / 10
		s.Average = &avg
	}

	return s
}
