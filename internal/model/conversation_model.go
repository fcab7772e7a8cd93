package model

import "time"

type Conversation struct {
	Id          string    `gorm:"primaryKey;type:text"`
	AccountId   int       `gorm:"index"`
	Title       string    `gorm:"type:text"`
	CreatedTime time.Time `gorm:"autoCreateTime"`
	UpdatedTime time.Time `gorm:"autoUpdateTime"`
}

func (Conversation) TableName() string {
	return "conversation"
}

// RequestResponsePair is one stored question/answer turn. Written by the
// gateway; this service only reads it.
type RequestResponsePair struct {
	Id             int64  `gorm:"primaryKey"`
	Request        string `gorm:"type:text"`
	Response       string `gorm:"type:text"`
	ConversationId string `gorm:"type:text;index"`
	CreatedTime    *time.Time
}

func (RequestResponsePair) TableName() string {
	return "request_response_pair"
}
