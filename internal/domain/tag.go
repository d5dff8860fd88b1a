package domain

import "time"

// Tag is a targeting dimension identifier. Tag IDs are caller-supplied, not
// generated: a tag comes into existence the first time any banner references
// it, and is never deleted by the banner surface.
type Tag struct {
	ID        int64     `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
