package dto

type RagQueryRequest struct {
	Query string `json:"query" validate:"required,max=8000"`
}

type RagQueryWithDeviceRequest struct {
	Query    string `json:"query" validate:"required,max=8000"`
	DeviceId int    `json:"device_id" validate:"gte=0"`
}

type RagQueryWithHistoryRequest struct {
	Query          string `json:"query" validate:"required,max=8000"`
	ConversationId string `json:"conversation_id"`
	DeviceId       int    `json:"device_id" validate:"gte=0"`
}

type RagQueryResponse struct {
	Response string  `json:"response"`
	ImageIds []int64 `json:"image_ids"`
}

type SummarizeQueryRequest struct {
	Query string `json:"query" validate:"required,max=8000"`
}

type SummarizeQueryResponse struct {
	Summary string `json:"summary"`
}
