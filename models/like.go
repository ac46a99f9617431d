package models

// LikeRecord stores one user's latest decision about a candidate.
// Keyed by (fromUserId, toUserId); a later decision for the same pair
// overwrites the earlier one, so decisions stay revisable until a
// match forms. Only the writing user ever touches its own records.
type LikeRecord struct {
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"` // Partition Key
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`     // Sort Key
	Liked      bool   `dynamodbav:"liked" json:"liked"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// LikesTable is the DynamoDB table name for swipe decisions
const LikesTable = "Likes"
