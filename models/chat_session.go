package models

// ChatSession is the derived view handed to the chat UI: the match,
// both participant profiles, and the first page of messages. It is
// assembled on demand and never stored.
type ChatSession struct {
	Match      Match         `json:"match"`
	Profiles   []UserProfile `json:"profiles"`
	Messages   []Message     `json:"messages"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// DecisionResult is what a swipe decision returns to the caller.
// NewMatch is true only for the call that actually created the match
// document; the side that lost the creation race still sees Matched.
type DecisionResult struct {
	Matched  bool   `json:"matched"`
	NewMatch bool   `json:"newMatch"`
	MatchID  string `json:"matchId,omitempty"`
}
