package chat

import (
	"time"
)

const SenderUser = "user"

const maxMessageLength = 2000

// Message is one chat line between a user and the agent behind a package.
// Ids are snowflakes, so ordering by id is ordering by time.
type Message struct {
	ID         int64     `json:"id,string"`
	PackageID  string    `json:"package_id"`
	UserID     string    `json:"user_id"`
	SenderType string    `json:"sender_type"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	Message   string `json:"message"`
}

type SendResponse struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id"`
}
