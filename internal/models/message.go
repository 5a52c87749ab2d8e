package models

import "time"

type Message struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	SenderID    uint64    `gorm:"not null;index" json:"sender_id"`
	RecipientID uint64    `gorm:"not null;index" json:"recipient_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
