package models

import (
	"time"
)

// Click is one recorded visit on a link. Clicks have no lifecycle of
// their own: they are created on redirect and removed with their link.
type Click struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	LinkID uint      `json:"linkId" gorm:"index;not null"`
	Date   time.Time `json:"date"`
	Device string    `json:"device"`
}
