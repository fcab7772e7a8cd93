package model

import (
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// Pdf is one uploaded manual, owned by a device.
type Pdf struct {
	Id            int64  `gorm:"primaryKey"`
	GcsBucket     string `gorm:"type:text"`
	DeviceId      int    `gorm:"index"`
	OcrFlag       bool   `gorm:"default:false"`
	FileName      string `gorm:"type:text"`
	NumberOfPages *int
	UploadedAt    time.Time `gorm:"autoCreateTime"`
	LastAccess    time.Time `gorm:"autoUpdateTime"`
}

func (Pdf) TableName() string {
	return "pdf"
}

type PdfPage struct {
	Id         int64 `gorm:"primaryKey"`
	PdfId      int64 `gorm:"index;not null"`
	PageNumber int
}

func (PdfPage) TableName() string {
	return "pdf_page"
}

type PdfParagraph struct {
	Id           int64     `gorm:"primaryKey"`
	PdfPageId    int64     `gorm:"index;not null"`
	Context      string    `gorm:"type:text"`
	LastModified time.Time `gorm:"autoUpdateTime"`
}

func (PdfParagraph) TableName() string {
	return "pdf_paragraph"
}

// PdfImage is an extracted figure. Metadata carries extractor output such as
// the bounding box and alt text.
type PdfImage struct {
	Id           int64 `gorm:"primaryKey"`
	PdfPageId    int64 `gorm:"index;not null"`
	Sequence     int
	GcsBucket    string         `gorm:"type:text"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	LastModified time.Time      `gorm:"autoUpdateTime"`
}

func (PdfImage) TableName() string {
	return "pdf_image"
}

// PdfChunk is the retrieval unit. Embedding dimension matches text-embedding-004.
type PdfChunk struct {
	Id        int64            `gorm:"primaryKey"`
	Context   string           `gorm:"type:text"`
	Embedding *pgvector.Vector `gorm:"type:vector(768)"`
}

func (PdfChunk) TableName() string {
	return "pdf_chunk"
}

type PdfChunkParagraph struct {
	Id             int64 `gorm:"primaryKey"`
	PdfChunkId     int64 `gorm:"index;not null"`
	PdfParagraphId int64 `gorm:"index;not null"`
}

func (PdfChunkParagraph) TableName() string {
	return "pdf_chunk_pdf_paragraph"
}

type PdfChunkImage struct {
	Id         int64 `gorm:"primaryKey"`
	PdfChunkId int64 `gorm:"index;not null"`
	PdfImageId int64 `gorm:"index;not null"`
}

func (PdfChunkImage) TableName() string {
	return "pdf_chunk_pdf_image"
}

// ImageMetadata is the decoded form of PdfImage.Metadata.
type ImageMetadata struct {
	BoundingBox []float64 `json:"bbox,omitempty"`
	AltText     string    `json:"alt_text,omitempty"`
	Label       string    `json:"label,omitempty"`
}

func (i PdfImage) DecodeMetadata() (ImageMetadata, error) {
	var meta ImageMetadata
	if len(i.Metadata) == 0 {
		return meta, nil
	}
	err := json.Unmarshal(i.Metadata, &meta)
	return meta, err
}
