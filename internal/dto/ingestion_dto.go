package dto

type ExtractPdfRequest struct {
	GcsObjectName string `json:"gcs_object_name" validate:"required"`
}

type ChunkAndEmbedRequest struct {
	Text string `json:"text" validate:"required"`
}

// ResultJsonResponse carries a JSON document as a string, unchanged.
type ResultJsonResponse struct {
	ResultJson string `json:"result_json"`
}

type EmbeddedChunk struct {
	Context string    `json:"context"`
	Vector  []float32 `json:"vector"`
}

type EmbeddedChunks struct {
	Chunks []EmbeddedChunk `json:"chunks"`
}
