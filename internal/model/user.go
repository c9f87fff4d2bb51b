package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:32" bson:"_id" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" bson:"username" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string    `gorm:"not null" bson:"password" json:"-"`
	Favorites    Favorites `gorm:"type:text;not null" bson:"favorites" json:"favorites"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Identity is what an auth token vouches for
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
