package digest

import (
	"time"
)

// Candidate is an unvalidated item produced by a fetcher. A nil Published
// means the date could not be resolved; such candidates never survive
// admission.
type Candidate struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time
}

// Item is the final exported record. Field names and the descending-date
// ordering are the output contract; downstream consumers depend on them.
type Item struct {
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	Summary string    `json:"summary"`
	Date    time.Time `json:"date"`
	Source  string    `json:"source"`
	Tags    []string  `json:"tags"`
}
