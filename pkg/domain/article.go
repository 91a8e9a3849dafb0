package domain

import "slices"

// Article represents a news article as delivered by the remote source and cached locally.
// URL is the stable identity of an article everywhere.
type Article struct {
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"` // short excerpt from the list page, empty if absent
	Thumbnail string `json:"thumbnail"`
	URL       string `json:"url"`
}

// Snapshot is the merged view of cached articles and live connectivity for one category
type Snapshot struct {
	Category Category  `json:"category"`
	Articles []Article `json:"articles"`
	Online   bool      `json:"online"`
	Loading  bool      `json:"loading"` // cache is empty and the initial sync has not finished yet
}

// Equal reports whether two snapshots carry the same content
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Category == other.Category && s.Online == other.Online && s.Loading == other.Loading &&
		slices.Equal(s.Articles, other.Articles)
}
