package models

import "time"

// Notification represents an engagement notification (PostgreSQL). Rows are
// written by the notifier worker as a side effect of like, repost and follow
// mutations; the read side is the notification endpoints.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"size:30;index"` // like, repost, follow
	FromUser  string    `json:"from" gorm:"size:24;index"` // hex ObjectID of the actor
	ToUser    string    `json:"to" gorm:"size:24;index"`   // hex ObjectID of the recipient
	IsRead    bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
