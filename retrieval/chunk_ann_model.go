package retrieval

import (
	"github.com/SaiNageswarS/go-api-boot/odm"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	VectorIndexName     = "chunkEmbeddingIndex"
	VectorPath          = "embedding"
	EmbeddingDimensions = 768
)

// ChunkAnnModel carries the embedding of a chunk, kept in a separate
// collection so the text collection stays lean.
type ChunkAnnModel struct {
	ChunkID   string      `json:"chunkId" bson:"_id"`
	Embedding bson.Vector `json:"-" bson:"embedding"`
}

func (m ChunkAnnModel) Id() string { return m.ChunkID }

func (m ChunkAnnModel) CollectionName() string { return "chunk_ann_index" }

// Indexes
func (m ChunkAnnModel) VectorIndexSpecs() []odm.VectorIndexSpec {
	return []odm.VectorIndexSpec{
		{
			Name:          VectorIndexName,
			Path:          VectorPath,
			Type:          "vector",
			NumDimensions: EmbeddingDimensions,
			Similarity:    "cosine",
			Quantization:  "scalar",
		},
	}
}
