package models

import "time"

// Cover is one entry of the stored cover list.
type Cover struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
