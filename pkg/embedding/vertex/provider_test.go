package vertex_test

import (
	"context"
	"errors"
	"testing"

	"lessoncraft-be/pkg/embedding/vertex"

	"github.com/m-mizutani/gt"
)

type mockEmbedder struct {
	generateEmbeddingFn func(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return m.generateEmbeddingFn(ctx, dimension, input)
}

func TestProvider_GenerateBatch(t *testing.T) {
	client := &mockEmbedder{generateEmbeddingFn: func(_ context.Context, dimension int, input []string) ([][]float64, error) {
		gt.Number(t, dimension).Equal(3)
		out := make([][]float64, len(input))
		for i := range input {
			out[i] = []float64{float64(i), 0.5, 1}
		}
		return out, nil
	}}

	res, err := vertex.NewProvider(client, 3).GenerateBatch(context.Background(), []string{"a", "b"}, "")
	gt.NoError(t, err).Required()

	gt.Array(t, res).Length(2).Required()
	gt.Value(t, res[1].Embedding.Values).Equal([]float32{1, 0.5, 1})
}

func TestProvider_GenerateWrapsError(t *testing.T) {
	client := &mockEmbedder{generateEmbeddingFn: func(context.Context, int, []string) ([][]float64, error) {
		return nil, errors.New("quota")
	}}

	_, err := vertex.NewProvider(client, 3).Generate(context.Background(), "a", "")

	gt.Error(t, err)
}

func TestProvider_CountMismatch(t *testing.T) {
	client := &mockEmbedder{generateEmbeddingFn: func(context.Context, int, []string) ([][]float64, error) {
		return [][]float64{}, nil
	}}

	_, err := vertex.NewProvider(client, 3).GenerateBatch(context.Background(), []string{"a"}, "")

	gt.Error(t, err)
}
