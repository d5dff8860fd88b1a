// Package domain defines the core entities of the banner server.
package domain

import "time"

// Banner is a feature-flag payload scoped to a feature and targeted via tags.
//
// A banner matches a resolution request when it references the requested tag,
// belongs to the requested feature, and is active. Nothing forbids several
// banners from matching the same (feature, tag) pair; resolution breaks the
// tie deterministically by lowest banner ID.
type Banner struct {
	ID        int64     `json:"banner_id"`
	FeatureID int64     `json:"feature_id"`
	TagIDs    []int64   `json:"tag_ids"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether the banner references the given tag.
func (b *Banner) HasTag(tagID int64) bool {
	for _, id := range b.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// BannerPatch describes a partial update to a banner. A nil field is left
// unchanged; a non-nil field replaces the stored value. TagIDs, when present,
// is the complete new tag set — an empty non-nil slice removes every
// association.
type BannerPatch struct {
	FeatureID *int64
	Content   *string
	IsActive  *bool
	TagIDs    *[]int64
}
