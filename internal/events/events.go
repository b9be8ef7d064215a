package events

import "time"

const (
	TypeCoverAdded    = "cover.added"
	TypeCoverDeleted  = "cover.deleted"
	TypeCoverReplaced = "cover.replaced"
)

type CoverEvent struct {
	Type  string    `json:"type"`
	ID    string    `json:"id,omitempty"`
	URL   string    `json:"url,omitempty"`
	Total int       `json:"total,omitempty"`
	At    time.Time `json:"at"`
}
