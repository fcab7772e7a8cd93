package entity

import "time"

type ConversationTurn struct {
	Request     string
	Response    string
	CreatedTime time.Time
}
