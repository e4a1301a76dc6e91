package models

// ScoredResult is one ranked search hit. Its identity is the Path alone:
// two results with the same path are the same result no matter their scores,
// which is what the query engine's first-score-wins dedup relies on.
type ScoredResult struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// SearchResponse is the full answer to one query, as returned by the HTTP
// API and the JSON output format. Results are ordered by rank.
type SearchResponse struct {
	Query     string         `json:"query"`
	Results   []ScoredResult `json:"results"`
	Total     int            `json:"total"`
	QueryTime int64          `json:"query_time_ms"`
}
