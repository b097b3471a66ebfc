package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Deduper tracks identity keys across the merged multi-source stream. The
// first candidate with a given key wins; later duplicates are discarded, not
// merged. It is owned by the single-threaded barrier stage and must not be
// shared with fetch workers.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Key derives the identity key from the candidate's link, falling back to the
// title for link-less items.
func Key(c Candidate) string {
	id := c.Link
	if id == "" {
		id = c.Title
	}
	hash := sha256.Sum256([]byte(id))
	return hex.EncodeToString(hash[:])
}

// Admit records the key and reports whether this is its first occurrence.
func (d *Deduper) Admit(key string) bool {
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
