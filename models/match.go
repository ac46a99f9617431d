package models

// CanonicalPair returns the two user ids in their fixed total order.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// CanonicalPairKey maps (a, b) and (b, a) to the same storage key, so
// at most one match document can ever exist for a pair of users.
func CanonicalPairKey(a, b string) string {
	a, b = CanonicalPair(a, b)
	return a + "#" + b
}

// Match is the durable record of a confirmed mutual like. It is written
// exactly once via a conditional create and never updated or deleted.
type Match struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"` // Partition Key, canonical pair key
	UserA     string `dynamodbav:"userA" json:"userA"`     // smaller id of the pair
	UserB     string `dynamodbav:"userB" json:"userB"`     // larger id of the pair
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID is one of the two match users.
func (m Match) HasParticipant(userID string) bool {
	return userID == m.UserA || userID == m.UserB
}

// Counterpart returns the other participant's id, or "" when userID is
// not part of the match.
func (m Match) Counterpart(userID string) string {
	switch userID {
	case m.UserA:
		return m.UserB
	case m.UserB:
		return m.UserA
	}
	return ""
}

// MatchesTable is the DynamoDB table name for confirmed matches
const MatchesTable = "Matches"

// MatchWithProfile combines a Match with the counterpart's profile for
// the match list view.
type MatchWithProfile struct {
	Match
	Profile UserProfile `json:"profile"`
}
