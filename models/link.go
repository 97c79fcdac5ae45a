package models

import (
	"time"
)

type Link struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	OriginalURL string    `json:"originalUrl" gorm:"not null"`
	ShortCode   string    `json:"shortCode" gorm:"uniqueIndex;size:10;not null"`
	ShortURL    string    `json:"shortUrl" gorm:"not null"`
	ExpiryDate  time.Time `json:"expiryDate" gorm:"not null"`
	Remarks     string    `json:"remarks"`
	Visits      int       `json:"visits" gorm:"default:0"`
	IPAddress   string    `json:"ipAddress"`
	UserDevice  string    `json:"userDevice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Clicks      []Click   `json:"clicks,omitempty" gorm:"foreignKey:LinkID"`
}
