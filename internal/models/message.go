package models

import "time"

const MaxMessageLength = 140

// Message is a short post. It is immutable once created; only its author may delete it.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:140;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"user" gorm:"constraint:OnDelete:CASCADE"`
}

type CreateMessageRequest struct {
	Text string `json:"text" validate:"required,max=140"`
}
