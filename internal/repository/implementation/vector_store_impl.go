package implementation

import (
	"context"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type VectorStoreImpl struct {
	db *gorm.DB
}

func NewVectorStore(db *gorm.DB) contract.VectorStore {
	return &VectorStoreImpl{db: db}
}

type textRow struct {
	Context    string
	Similarity float64
	DeviceId   *int
}

type imageRow struct {
	ImageId    int64
	Similarity float64
	DeviceId   *int
}

// SearchText keeps the best row per normalized text inside a DISTINCT ON
// subquery, then filters and ranks the survivors by similarity.
func (r *VectorStoreImpl) SearchText(ctx context.Context, vector []float32, filter contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedChunk, error) {
	if limit <= 0 {
		return nil, nil
	}
	queryVector := pgvector.NewVector(vector)

	inner := r.db.Table("pdf_chunk AS pc").Where("pc.embedding IS NOT NULL")
	if filter.DeviceId != nil {
		inner = inner.
			Select("DISTINCT ON (TRIM(LOWER(pc.context))) pc.context AS context, 1 - (pc.embedding <=> ?) AS similarity, p.device_id AS device_id", queryVector).
			Joins("JOIN pdf_chunk_pdf_paragraph AS pcpp ON pcpp.pdf_chunk_id = pc.id").
			Joins("JOIN pdf_paragraph AS pp ON pcpp.pdf_paragraph_id = pp.id").
			Joins("JOIN pdf_page AS pg ON pp.pdf_page_id = pg.id").
			Joins("JOIN pdf AS p ON pg.pdf_id = p.id").
			Where("p.device_id = ?", *filter.DeviceId)
	} else {
		inner = inner.Select("DISTINCT ON (TRIM(LOWER(pc.context))) pc.context AS context, 1 - (pc.embedding <=> ?) AS similarity, NULL::int AS device_id", queryVector)
	}
	inner = inner.Order("TRIM(LOWER(pc.context)), similarity DESC")

	var rows []textRow
	err := r.db.WithContext(ctx).
		Table("(?) AS ranked", inner).
		Select("context, similarity, device_id").
		Where("similarity >= ?", threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.RetrievedChunk, len(rows))
	for i, row := range rows {
		out[i] = &entity.RetrievedChunk{Context: row.Context, Similarity: row.Similarity, DeviceId: row.DeviceId}
	}
	return out, nil
}

// SearchImages scores an image by its best linked chunk.
func (r *VectorStoreImpl) SearchImages(ctx context.Context, vector []float32, filter contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedImageRef, error) {
	if limit <= 0 {
		return nil, nil
	}
	queryVector := pgvector.NewVector(vector)

	query := r.db.WithContext(ctx).
		Table("pdf_chunk_pdf_image AS pcpi").
		Joins("JOIN pdf_chunk AS pc ON pc.id = pcpi.pdf_chunk_id").
		Where("pc.embedding IS NOT NULL")

	if filter.DeviceId != nil {
		query = query.
			Select("pcpi.pdf_image_id AS image_id, MAX(1 - (pc.embedding <=> ?)) AS similarity, p.device_id AS device_id", queryVector).
			Joins("JOIN pdf_image AS pi ON pi.id = pcpi.pdf_image_id").
			Joins("JOIN pdf_page AS pg ON pi.pdf_page_id = pg.id").
			Joins("JOIN pdf AS p ON pg.pdf_id = p.id").
			Where("p.device_id = ?", *filter.DeviceId).
			Group("pcpi.pdf_image_id, p.device_id")
	} else {
		query = query.
			Select("pcpi.pdf_image_id AS image_id, MAX(1 - (pc.embedding <=> ?)) AS similarity", queryVector).
			Group("pcpi.pdf_image_id")
	}

	var rows []imageRow
	err := query.
		Having("MAX(1 - (pc.embedding <=> ?)) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.RetrievedImageRef, len(rows))
	for i, row := range rows {
		out[i] = &entity.RetrievedImageRef{ImageId: row.ImageId, Similarity: row.Similarity, DeviceId: row.DeviceId}
	}
	return out, nil
}
