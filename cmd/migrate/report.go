package main

import (
	"fmt"

	"device-assistant-ai/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type imageSample struct {
	Id   int64
	Meta model.ImageMetadata
	Err  error
}

type corpusReport struct {
	Chunks   int64
	Embedded int64
	Images   int64
	WithAlt  int64
	Samples  []imageSample
}

func collectReport(db *gorm.DB) (*corpusReport, error) {
	r := &corpusReport{}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"chunks", db.Model(&model.PdfChunk{}), &r.Chunks},
		{"embedded chunks", db.Model(&model.PdfChunk{}).Where("embedding IS NOT NULL"), &r.Embedded},
		{"images", db.Model(&model.PdfImage{}), &r.Images},
		{"images with alt text", db.Model(&model.PdfImage{}).Where(datatypes.JSONQuery("metadata").HasKey("alt_text")), &r.WithAlt},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}

	var images []model.PdfImage
	if err := db.Where(datatypes.JSONQuery("metadata").HasKey("bbox")).Limit(5).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("sample images: %w", err)
	}
	for _, img := range images {
		meta, err := img.DecodeMetadata()
		r.Samples = append(r.Samples, imageSample{Id: img.Id, Meta: meta, Err: err})
	}

	return r, nil
}
