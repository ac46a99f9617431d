package models

// MessageTimeLayout is a fixed-width UTC timestamp format. Unlike
// RFC3339Nano it keeps trailing zeros, so lexicographic order on the
// formatted string equals chronological order.
const MessageTimeLayout = "2006-01-02T15:04:05.000000000Z"

// MessageSortKey builds the Messages sort key. Embedding the message id
// after the timestamp totally orders messages even when two timestamps
// coincide.
func MessageSortKey(createdAt, messageID string) string {
	return createdAt + "#" + messageID
}

// SystemSenderID marks server-generated messages such as the match
// welcome. It is never a valid user id.
const SystemSenderID = "system"

// Message is one chat entry. Append-only: messages are never edited,
// reordered, or deleted; only the isUnread and liked flags change.
type Message struct {
	MatchID   string `dynamodbav:"matchId" json:"matchId"` // Partition Key
	SortKey   string `dynamodbav:"sortKey" json:"sortKey"` // Sort Key, createdAt + "#" + messageId
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Content   string `dynamodbav:"content" json:"content"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"` // MessageTimeLayout, assigned by the server
	IsUnread  bool   `dynamodbav:"isUnread" json:"isUnread"`
	Liked     bool   `dynamodbav:"liked" json:"liked"`
	System    bool   `dynamodbav:"system,omitempty" json:"system,omitempty"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
