package entities

import "time"

type AdvisoryDoc struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time
}

type AdvisoryChunk struct {
	ChunkID   uint   `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint   `gorm:"index" json:"doc_id"`
	Ord       int    `json:"ord"`
	Text      string `json:"text"`
	Embedding []byte `json:"-"`
	CreatedAt time.Time
}

// AdvisoryRef is a non-persisted pointer returned alongside simulation
// responses that warrant reading material.
type AdvisoryRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
