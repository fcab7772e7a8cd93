package entity

// RetrievedChunk is a text fragment returned by the vector store.
// Similarity is 1 - cosine distance; DeviceId is set on device-scoped searches.
type RetrievedChunk struct {
	Context    string
	Similarity float64
	DeviceId   *int
}

type RetrievedImageRef struct {
	ImageId    int64
	Similarity float64
	DeviceId   *int
}
