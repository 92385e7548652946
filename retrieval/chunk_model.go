package retrieval

import (
	"strings"

	"github.com/SaiNageswarS/go-api-boot/odm"
)

const TextSearchIndexName = "chunkIndex"

var TextSearchPaths = []string{"sentences", "sectionPath", "tags", "title"}

// ChunkModel is one windowed passage of a support document (manual, policy,
// FAQ). Chunks of a section are chained through PrevChunkID/NextChunkID so
// a hit can be widened to its neighbors.
type ChunkModel struct {
	ChunkID     string   `json:"chunkId" bson:"_id"`
	Title       string   `json:"title" bson:"title"`             // Document title, e.g. "Router X100 User Manual"
	SectionPath string   `json:"sectionPath" bson:"sectionPath"` // e.g. "Troubleshooting > Connectivity"
	SourceURI   string   `json:"sourceUri" bson:"sourceUri"`     // e.g. "file://manuals/x100.pdf"
	Tags        []string `json:"tags" bson:"tags"`
	Sentences   []string `json:"sentences" bson:"sentences"`     // Sentences in the chunk, used for text search
	PrevChunkID string   `json:"prevChunkId" bson:"prevChunkId"` // ID of the previous chunk in the sequence
	NextChunkID string   `json:"nextChunkId" bson:"nextChunkId"`
	SectionID   string   `bson:"sectionId" json:"sectionId"`     // stable hash for the *section* (same for all windows of that section)
	WindowIndex int      `bson:"windowIndex" json:"windowIndex"` // 0-based window order *within* section
}

func (m ChunkModel) Id() string { return m.ChunkID }

func (m ChunkModel) CollectionName() string { return "chunks" }

// Body joins the chunk's sentences for prompt assembly.
func (m ChunkModel) Body() string { return strings.Join(m.Sentences, " ") }

// Indexes
func (m ChunkModel) TermSearchIndexSpecs() []odm.TermSearchIndexSpec {
	return []odm.TermSearchIndexSpec{
		{
			Name:  TextSearchIndexName,
			Paths: TextSearchPaths,
		},
	}
}
