package retrieval

import (
	"context"
	"slices"
	"sort"

	"github.com/SaiNageswarS/dialog-boot/llm"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// search parameters.
const (
	rrfK               = 60  // dampening constant from the RRF paper
	textSearchWeight   = 1.0 // optional per-engine weights
	vectorSearchWeight = 1.0
	vecK               = 20 // # of hits to keep from each engine
	textK              = 20
	maxChunks          = 20
)

// Searcher answers document queries with hybrid search: a term index and a
// vector index are queried in parallel and their rankings fused.
type Searcher struct {
	embedder llm.Embedder
	chunks   odm.OdmCollectionInterface[ChunkModel]
	vectors  odm.OdmCollectionInterface[ChunkAnnModel]
}

func NewSearcher(chunks odm.OdmCollectionInterface[ChunkModel], vectors odm.OdmCollectionInterface[ChunkAnnModel], embedder llm.Embedder) *Searcher {
	return &Searcher{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
	}
}

// Search runs a hybrid search per query in parallel and returns the fused,
// deduplicated chunks, widened with their section neighbors.
func (s *Searcher) Search(ctx context.Context, queries []string) ([]*ChunkModel, error) {
	searchTasks := make([]<-chan async.Result[[]*ChunkModel], 0, len(queries))
	for _, q := range queries {
		if q == "" {
			continue
		}
		searchTasks = append(searchTasks, s.hybridSearch(ctx, q))
	}

	searchResults, err := async.AwaitAll(searchTasks...)
	if err != nil {
		logger.Error("Failed to perform hybrid search", zap.Error(err))
		return nil, err
	}

	rankedChunks := linq.Flatten(searchResults)
	rankedChunks = linq.Distinct(rankedChunks, func(c *ChunkModel) string {
		return c.ChunkID
	})

	return s.widenWithNeighbors(ctx, rankedChunks), nil
}

// hybridSearch fires the term search and the vector search for one query and
// fuses the two rankings with reciprocal-rank fusion:
//
//	RRF_score(d) = Σ_e  w_e / (rrfK + rank_e(d))
//
// Rank is fused instead of raw score because the engines score on different
// scales (BM25 vs cosine) and rank stays stable across index rebuilds. The
// 1/(rrfK+rank) curve already mutes tail hits, so no score threshold is
// applied. One engine failing degrades the ranking instead of the turn.
func (s *Searcher) hybridSearch(ctx context.Context, query string) <-chan async.Result[[]*ChunkModel] {
	return async.Go(func() ([]*ChunkModel, error) {
		textTask := s.chunks.TermSearch(ctx, query, odm.TermSearchParams{
			IndexName: TextSearchIndexName,
			Path:      TextSearchPaths,
			Limit:     textK,
		})

		emb, err := async.Await(s.embedder.GetEmbedding(ctx, query, llm.WithTask("retrieval.query")))
		if err != nil {
			return nil, status.Errorf(codes.Internal, "embed: %v", err)
		}

		vecTask := s.vectors.VectorSearch(ctx, emb, odm.VectorSearchParams{
			IndexName:     VectorIndexName,
			Path:          VectorPath,
			K:             vecK,
			NumCandidates: 100,
		})

		textHits, err := async.Await(textTask)
		if err != nil {
			logger.Error("text search failed", zap.Error(err))
			textHits = nil
		}

		vecHits, err := async.Await(vecTask)
		if err != nil {
			logger.Error("vector search failed", zap.Error(err))
			vecHits = nil
		}

		textRanks := rankHits(textHits)
		vecRanks := rankHits(vecHits)

		// Term-search hits carry the full document; stash them so most
		// fused ids need no second lookup.
		cache := make(map[string]*ChunkModel, len(textHits))
		for i := range textHits {
			doc := textHits[i].Doc
			if _, seen := cache[doc.ChunkID]; !seen {
				cache[doc.ChunkID] = &doc
			}
		}

		ids := fuseRanks(textRanks, vecRanks, maxChunks)
		return s.fetchChunksByIds(ctx, cache, ids), nil
	})
}

// rankHits converts an ordered hit list into id → 1-based rank, keeping the
// best rank of a document that appears twice.
func rankHits[T interface{ Id() string }](hits []odm.SearchHit[T]) map[string]int {
	ranks := make(map[string]int, len(hits))
	for i, h := range hits {
		id := h.Doc.Id()
		if _, seen := ranks[id]; !seen {
			ranks[id] = i + 1
		}
	}
	return ranks
}

// fuseRanks applies reciprocal-rank fusion over the two rankings and returns
// the top-limit ids, best first. A min-heap keeps at most limit candidates.
func fuseRanks(textRanks, vectorRanks map[string]int, limit int) []string {
	combined := make(map[string]float64, len(textRanks)+len(vectorRanks))
	for id, r := range textRanks {
		combined[id] = textSearchWeight / float64(rrfK+r)
	}
	for id, r := range vectorRanks {
		combined[id] += vectorSearchWeight / float64(rrfK+r)
	}

	type pair struct {
		id    string
		score float64
	}

	h := ds.NewMinHeap(func(a, b pair) bool { return a.score < b.score })
	for id, sc := range combined {
		h.Push(pair{id, sc})
		if h.Len() > limit {
			h.Pop()
		}
	}

	ids := linq.Map(h.ToSortedSlice(), func(p pair) string { return p.id })
	slices.Reverse(ids) // highest score first
	return ids
}

// fetchChunksByIds materialises the fused ids in ranking order, fetching the
// ids missing from the cache in one round trip.
func (s *Searcher) fetchChunksByIds(ctx context.Context, cache map[string]*ChunkModel, rankedIds []string) []*ChunkModel {
	if len(rankedIds) == 0 {
		return nil
	}

	chunkByID := make(map[string]*ChunkModel, len(rankedIds))
	var missing []string
	for _, id := range rankedIds {
		if c, ok := cache[id]; ok {
			chunkByID[id] = c
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		dbChunks, err := async.Await(
			s.chunks.Find(ctx, bson.M{"_id": bson.M{"$in": missing}}, nil, 0, 0),
		)
		if err != nil {
			logger.Error("Failed to fetch chunks from database", zap.Error(err))
			// we still return whatever we already have
		}
		for i := range dbChunks {
			chunkByID[dbChunks[i].ChunkID] = &dbChunks[i]
		}
	}

	ordered := make([]*ChunkModel, 0, len(rankedIds))
	for _, id := range rankedIds {
		if ch, ok := chunkByID[id]; ok {
			ordered = append(ordered, ch)
		} else {
			logger.Info("chunk id missing after lookup", zap.String("id", id))
		}
	}
	return ordered
}

// widenWithNeighbors groups hits by section in RRF order, orders windows
// inside each section, and pulls in missing prev/next chunks so the answer
// prompt sees contiguous passages.
func (s *Searcher) widenWithNeighbors(ctx context.Context, rankedChunks []*ChunkModel) []*ChunkModel {
	if len(rankedChunks) == 0 {
		return rankedChunks
	}

	orderBySection(rankedChunks)

	neighborsById := s.fetchMissingNeighbors(ctx, rankedChunks)

	out := make([]*ChunkModel, 0, len(rankedChunks)*3)
	for _, c := range rankedChunks {
		if prev, ok := neighborsById[c.PrevChunkID]; ok {
			out = append(out, prev)
			delete(neighborsById, c.PrevChunkID) // avoid duplicates
		}

		out = append(out, c)

		if next, ok := neighborsById[c.NextChunkID]; ok {
			out = append(out, next)
			delete(neighborsById, c.NextChunkID)
		}
	}
	return out
}

// orderBySection sorts chunks by the RRF rank of their section, then by
// window order within the section.
func orderBySection(rankedChunks []*ChunkModel) {
	sectionRank := make(map[string]int, len(rankedChunks))
	for idx, ch := range rankedChunks {
		if _, ok := sectionRank[ch.SectionID]; !ok {
			sectionRank[ch.SectionID] = idx
		}
	}

	sort.SliceStable(rankedChunks, func(i, j int) bool {
		si, sj := rankedChunks[i], rankedChunks[j]
		if si.SectionID != sj.SectionID {
			return sectionRank[si.SectionID] < sectionRank[sj.SectionID]
		}
		return si.WindowIndex < sj.WindowIndex
	})
}

func (s *Searcher) fetchMissingNeighbors(ctx context.Context, rankedChunks []*ChunkModel) map[string]*ChunkModel {
	seenIds := ds.NewSet[string]()
	for _, c := range rankedChunks {
		seenIds.Add(c.ChunkID)
	}

	needIds := ds.NewSet[string]()
	for _, c := range rankedChunks {
		if len(c.PrevChunkID) > 0 && !seenIds.Contains(c.PrevChunkID) && !needIds.Contains(c.PrevChunkID) {
			needIds.Add(c.PrevChunkID)
		}
		if len(c.NextChunkID) > 0 && !seenIds.Contains(c.NextChunkID) && !needIds.Contains(c.NextChunkID) {
			needIds.Add(c.NextChunkID)
		}
	}

	neighborsById := make(map[string]*ChunkModel, needIds.Len())
	if needIds.Len() == 0 {
		return neighborsById
	}

	neighbors, err := async.Await(
		s.chunks.Find(ctx, bson.M{"_id": bson.M{"$in": needIds.ToSlice()}}, nil, 0, 0),
	)
	if err != nil {
		logger.Error("Failed to fetch neighbors from database", zap.Error(err))
		return neighborsById
	}

	for i := range neighbors {
		neighborsById[neighbors[i].ChunkID] = &neighbors[i]
	}
	return neighborsById
}
