package domain

import "time"

// Signature captures the on-disk state of a corpus file. Two signatures are equal
// only if the file has not changed between the observations.
type Signature struct {
	Size        int64  `json:"size"`
	ModTimeNano int64  `json:"mtime_ns"`
	ContentHash uint64 `json:"content_hash,omitempty"`
}

// ModTime returns the modification time as a time.Time.
func (s Signature) ModTime() time.Time {
	return time.Unix(0, s.ModTimeNano)
}

// Identity is a corpus file path together with its signature at lookup time.
type Identity struct {
	Path      string
	Signature Signature
}

// CacheRecord is a persisted encoded form together with the identity and raster
// variant it was computed from.
type CacheRecord struct {
	Identity Identity
	Variant  Palette
	Form     *EncodedForm
}

// Matches reports whether the record is still valid for id under variant.
func (r *CacheRecord) Matches(id Identity, variant Palette) bool {
	return r != nil && r.Form != nil &&
		r.Identity.Path == id.Path &&
		r.Identity.Signature == id.Signature &&
		r.Variant == variant
}
