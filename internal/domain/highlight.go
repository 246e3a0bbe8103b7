package domain

// Highlight describes a curated story collection.
type Highlight struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	CoverURL string      `json:"cover_url"`
	User     UserSummary `json:"user"`
}
