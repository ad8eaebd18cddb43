package mapper

import (
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	return &entity.DocumentChunk{
		Id:           c.Id,
		FileId:       c.FileId,
		LessonPlanId: c.LessonPlanId,
		ChunkText:    c.ChunkText,
		Embedding:    c.Embedding.Slice(),
		Dimension:    c.Dimension,
		ChunkIndex:   c.ChunkIndex,
		SourcePath:   c.SourcePath,
		ContentType:  c.ContentType,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	return &model.DocumentChunk{
		Id:           c.Id,
		FileId:       c.FileId,
		LessonPlanId: c.LessonPlanId,
		ChunkText:    c.ChunkText,
		Embedding:    pgvector.NewVector(c.Embedding),
		Dimension:    c.Dimension,
		ChunkIndex:   c.ChunkIndex,
		SourcePath:   c.SourcePath,
		ContentType:  c.ContentType,
		CreatedAt:    c.CreatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
