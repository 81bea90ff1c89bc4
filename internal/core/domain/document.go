package domain

import "time"

// Document represents an ingested source file.
// It is created once per file and never mutated; deleting a document
// cascades to all of its chunks.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the base name of the source file.
	Filename string

	// Title is the human-readable title. Defaults to the filename stem.
	Title string

	// ContentType is the source file extension (".pdf", ".md").
	ContentType string

	// FileSize is the source file size in bytes.
	FileSize int64

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a contiguous passage of a document, the unit of embedding
// and retrieval. Chunks for one document are produced as a single batch
// with dense indices 0..N-1 and are only ever deleted together with
// their parent document.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the ordinal position within the document (0-based, dense).
	Index int

	// Content is the text content of this chunk.
	Content string

	// Metadata contains chunk-specific key-value pairs. See the Meta*
	// constants for the documented keys.
	Metadata map[string]any

	// Embedding is the vector representation for similarity search.
	// Its length is fixed by the configured embedding model.
	Embedding []float32
}

// Metadata keys attached to every chunk.
const (
	MetaFilename    = "filename"
	MetaTitle       = "title"
	MetaChunkIndex  = "chunk_index"
	MetaTotalChunks = "total_chunks"
	MetaFileType    = "file_type"
)

// Metadata keys attached on the markdown chunking path.
const (
	MetaSectionHeader  = "section_header"
	MetaSubChunkIndex  = "sub_chunk_index"
	MetaTotalSubChunks = "total_sub_chunks"
)

// Metadata keys attached on the general chunking path.
const (
	MetaContentType = "content_type"
	MetaKeyTopics   = "key_topics"
	MetaWordCount   = "word_count"
)

// Content type classifications assigned on the general chunking path.
const (
	ContentTypeClaims     = "claims"
	ContentTypeLegal      = "legal"
	ContentTypeProcedural = "procedural"
	ContentTypeContact    = "contact"
	ContentTypeGeneral    = "general"
)

// RetrievalResult is a single similarity-search hit. It is transient:
// produced per query, used to build the answer prompt, never persisted.
type RetrievalResult struct {
	// Content is the matched chunk text.
	Content string

	// Metadata is the matched chunk's metadata.
	Metadata map[string]any

	// Similarity is the cosine similarity score in [0, 1].
	Similarity float64
}

// Answer is the result of one question. Sources holds the retrieval
// results in the same ranked order used to build the prompt, suitable
// for citation display.
type Answer struct {
	Text    string
	Sources []RetrievalResult
}

// SourceTitle returns the title recorded in a result's metadata,
// falling back to the filename.
func (r RetrievalResult) SourceTitle() string {
	if title, ok := r.Metadata[MetaTitle].(string); ok && title != "" {
		return title
	}
	return r.SourceFilename()
}

// SourceFilename returns the filename recorded in a result's metadata.
func (r RetrievalResult) SourceFilename() string {
	if name, ok := r.Metadata[MetaFilename].(string); ok && name != "" {
		return name
	}
	return "Unknown"
}
