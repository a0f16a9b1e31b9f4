package models

// Post represents a feed post. IDs increase monotonically with each creation;
// Timestamp is the RFC 3339 creation time, stored verbatim so listing can
// sort lexicographically.
type Post struct {
	ID        int    `json:"post_id"`
	Username  string `json:"username"`
	ImageData string `json:"image_data"`
	Text      string `json:"post_text"`
	Timestamp string `json:"timestamp"`
}
