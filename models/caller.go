package models

// Caller identifies the remote party of an incoming call. Never persisted.
type Caller struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
