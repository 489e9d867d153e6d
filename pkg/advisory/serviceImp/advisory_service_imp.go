package serviceImp

import (
	"math"
	"sort"
	"strings"

	"agrosim/entities"
	"agrosim/pkg/advisory/embedder"
	"agrosim/pkg/advisory/repository"
)

type Svc struct {
	r   repository.AdvisoryRepository
	emb *embedder.Client
}

func New(r repository.AdvisoryRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 { maxRunes = 1000 }
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 { parts = append(parts, cur.String()) }
	return parts
}

func (s *Svc) UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error) {
	d := &entities.AdvisoryDoc{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil { return nil, 0, err }

	chs := chunkText(text, 1000)
	if len(chs) == 0 { return d, 0, nil }

	var embs [][]float32
	var err error
	if s.emb != nil {
		embs, err = s.emb.EmbedChunks(chs)
		if err != nil {
			// degrade gracefully: keep chunks with empty embeddings
			embs = nil
		}
	}

	rows := make([]entities.AdvisoryChunk, len(chs))
	for i := range chs {
		var embBytes []byte
		if embs != nil && i < len(embs) {
			embBytes = embedder.Pack(embs[i])
		} // else keep nil []byte; scoring treats it as a zero vector
		rows[i] = entities.AdvisoryChunk{
			DocID:     d.DocID,
			Ord:       i,
			Text:      chs[i],
			Embedding: embBytes,
		}
	}

	if err := s.r.BulkInsertChunks(rows); err != nil { return nil, 0, err }
	return d, len(rows), nil
}

func (s *Svc) Search(query string, k int) ([]entities.AdvisoryChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	// 1) Try to embed the query (safe if emb is nil or embedding fails)
	var qvec []float32
	if s.emb != nil {
		if vec, err := s.emb.EmbedChunks([]string{q}); err == nil && len(vec) > 0 {
			qvec = vec[0]
		}
	}

	// 2) Fetch candidate chunks from repo
	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	// 3) Score candidates
	type scored struct {
		ch entities.AdvisoryChunk
		sc float64
	}
	scoredList := make([]scored, 0, len(chunks))

	if len(qvec) > 0 {
		// vector similarity
		for _, ch := range chunks {
			chVec := embedder.Unpack(ch.Embedding)
			if len(chVec) == 0 || len(chVec) != len(qvec) {
				continue
			}
			var dot, nq, nd float64
			for i := range qvec {
				v := float64(qvec[i])
				w := float64(chVec[i])
				dot += v * w
				nq += v * v
				nd += w * w
			}
			if nq == 0 || nd == 0 {
				continue
			}
			sc := dot / (math.Sqrt(nq) * math.Sqrt(nd))
			scoredList = append(scoredList, scored{ch: ch, sc: sc})
		}
	} else {
		// keyword fallback: any query term hit scores the chunk
		for _, ch := range chunks {
			score := 0.0
			low := strings.ToLower(ch.Text)
			for _, term := range strings.Fields(strings.ToLower(q)) {
				if strings.Contains(low, term) {
					score++
				}
			}
			if score > 0 {
				scoredList = append(scoredList, scored{ch: ch, sc: score})
			}
		}
	}

	if len(scoredList) == 0 {
		return nil, nil
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].sc > scoredList[j].sc })

	if k > len(scoredList) {
		k = len(scoredList)
	}
	out := make([]entities.AdvisoryChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, scoredList[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error) {
	return s.r.DocsByIDs(ids)
}
