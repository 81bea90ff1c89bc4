package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

func insertDocWithChunks(t *testing.T, store *VectorStore, docID string, chunks []domain.Chunk) {
	t.Helper()
	ctx := context.Background()
	_, err := store.InsertDocument(ctx, &domain.Document{ID: docID, Filename: docID + ".md", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, store.InsertChunks(ctx, docID, chunks))
}

func TestVectorStore_InsertDocument_Duplicate(t *testing.T) {
	store := NewVectorStore(3)
	ctx := context.Background()

	_, err := store.InsertDocument(ctx, &domain.Document{ID: "doc-1"})
	require.NoError(t, err)

	_, err = store.InsertDocument(ctx, &domain.Document{ID: "doc-1"})
	assert.Error(t, err)
}

func TestVectorStore_InsertChunks_DimensionMismatch(t *testing.T) {
	store := NewVectorStore(3)
	ctx := context.Background()

	_, err := store.InsertDocument(ctx, &domain.Document{ID: "doc-1"})
	require.NoError(t, err)

	err = store.InsertChunks(ctx, "doc-1", []domain.Chunk{
		{Content: "ok", Embedding: []float32{1, 0, 0}},
		{Content: "bad", Embedding: []float32{1, 0}},
	})
	require.Error(t, err)

	// Nothing was written: the batch is all-or-none.
	count, err := store.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVectorStore_InsertChunks_UnknownDocument(t *testing.T) {
	store := NewVectorStore(3)
	err := store.InsertChunks(context.Background(), "ghost", []domain.Chunk{
		{Content: "x", Embedding: []float32{1, 0, 0}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVectorStore_Search_OrderingAndThreshold(t *testing.T) {
	store := NewVectorStore(3)
	insertDocWithChunks(t, store, "doc-1", []domain.Chunk{
		{Content: "exact", Embedding: []float32{1, 0, 0}},
		{Content: "close", Embedding: []float32{0.9, 0.1, 0}},
		{Content: "far", Embedding: []float32{0, 1, 0}},
	})

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 10, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 2, "orthogonal chunk must fall below the threshold")

	assert.Equal(t, "exact", results[0].Content)
	assert.Equal(t, "close", results[1].Content)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-6)
}

func TestVectorStore_Search_TopKTruncation(t *testing.T) {
	store := NewVectorStore(3)
	insertDocWithChunks(t, store, "doc-1", []domain.Chunk{
		{Content: "a", Embedding: []float32{1, 0, 0}},
		{Content: "b", Embedding: []float32{0.99, 0.01, 0}},
		{Content: "c", Embedding: []float32{0.98, 0.02, 0}},
	})

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 2, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestVectorStore_Search_DimensionMismatch(t *testing.T) {
	store := NewVectorStore(3)
	_, err := store.Search(context.Background(), []float32{1, 0}, 5, 0)
	assert.Error(t, err)
}

func TestVectorStore_DeleteDocument_Cascades(t *testing.T) {
	store := NewVectorStore(3)
	ctx := context.Background()
	insertDocWithChunks(t, store, "doc-1", []domain.Chunk{
		{Content: "x", Embedding: []float32{1, 0, 0}},
	})

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	count, err := store.CountChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Zero(t, count)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.ErrorIs(t, store.DeleteDocument(ctx, "doc-1"), domain.ErrNotFound)
}

func TestVectorStore_ListDocuments_NewestFirst(t *testing.T) {
	store := NewVectorStore(3)
	ctx := context.Background()

	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	_, err := store.InsertDocument(ctx, &domain.Document{ID: "old", CreatedAt: older})
	require.NoError(t, err)
	_, err = store.InsertDocument(ctx, &domain.Document{ID: "new", CreatedAt: newer})
	require.NoError(t, err)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "old", docs[1].ID)
}
