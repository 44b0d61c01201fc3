package models

import "time"

// Content lifecycle event names delivered over the socket
const (
	EventNewContent    = "new:content"
	EventUpdateContent = "update:content"
	EventDeleteContent = "delete:content"
)

// Delivery type tags: which rule produced a particular delivery.
// Informational only, used by clients for message framing.
const (
	DeliveryPoster = "poster"
	DeliveryVideo  = "video"
	DeliveryWriter = "content-writer"
)

// Notification represents one delivered content event, persisted in
// PostgreSQL so recipients can read the feed after the fact. Socket
// delivery itself stays best-effort and queue-less.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Event       string    `json:"event" gorm:"size:30;index"` // new:content, update:content, delete:content
	ContentID   string    `json:"content_id" gorm:"index"`
	ActorID     string    `json:"actor_id" gorm:"index"`
	RecipientID string    `json:"recipient_id" gorm:"index"`
	Business    string    `json:"business"`
	Message     string    `json:"message"`
	Type        string    `json:"type" gorm:"size:20"` // poster, video, content-writer
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
