package dbjson

import "time"

type Message struct {
	ID         string    `json:"id"`
	SenderID   UserID    `json:"senderId"`
	ReceiverID UserID    `json:"receiverId"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}
