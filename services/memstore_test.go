package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"careconnect_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store used by the service tests. A single
// mutex makes every operation atomic, so PutItemIfAbsent gives the same
// at-most-one-success guarantee the DynamoDB conditional write does.
type memStore struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue
}

type memTableSchema struct {
	hashKey  string
	rangeKey string
}

var memSchemas = map[string]memTableSchema{
	models.UserProfilesTable: {hashKey: "userId"},
	models.LikesTable:        {hashKey: "fromUserId", rangeKey: "toUserId"},
	models.MatchesTable:      {hashKey: "matchId"},
	models.MessagesTable:     {hashKey: "matchId", rangeKey: "sortKey"},
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

var _ Store = (*memStore)(nil)

func attrString(item map[string]types.AttributeValue, field string) string {
	if v, ok := item[field].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (ms *memStore) itemKey(tableName string, item map[string]types.AttributeValue) string {
	schema, ok := memSchemas[tableName]
	if !ok {
		panic(fmt.Sprintf("memStore: unknown table %q", tableName))
	}
	key := attrString(item, schema.hashKey)
	if schema.rangeKey != "" {
		key += "\x00" + attrString(item, schema.rangeKey)
	}
	return key
}

func (ms *memStore) table(tableName string) map[string]map[string]types.AttributeValue {
	t, ok := ms.tables[tableName]
	if !ok {
		t = make(map[string]map[string]types.AttributeValue)
		ms.tables[tableName] = t
	}
	return t
}

func cloneItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (ms *memStore) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	item, ok := ms.table(tableName)[ms.itemKey(tableName, key)]
	if !ok {
		return nil, ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (ms *memStore) PutItem(_ context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.table(tableName)[ms.itemKey(tableName, marshaled)] = marshaled
	return nil
}

func (ms *memStore) PutItemIfAbsent(_ context.Context, tableName string, item interface{}, _ string) (bool, error) {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return false, err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	key := ms.itemKey(tableName, marshaled)
	if _, exists := ms.table(tableName)[key]; exists {
		return false, nil
	}
	ms.table(tableName)[key] = marshaled
	return true, nil
}

func (ms *memStore) UpdateItem(_ context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	itemKey := ms.itemKey(tableName, key)
	item, ok := ms.table(tableName)[itemKey]
	if !ok {
		item = cloneItem(key)
		ms.table(tableName)[itemKey] = item
	}

	expr := strings.TrimPrefix(updateExpression, "SET ")
	for _, assignment := range strings.Split(expr, ",") {
		parts := strings.SplitN(strings.TrimSpace(assignment), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("memStore: cannot parse assignment %q", assignment)
		}
		field := strings.TrimSpace(parts[0])
		if resolved, ok := names[field]; ok {
			field = resolved
		}
		placeholder := strings.TrimSpace(parts[1])
		value, ok := values[placeholder]
		if !ok {
			return nil, fmt.Errorf("memStore: missing value for %q", placeholder)
		}
		item[field] = value
	}

	return cloneItem(item), nil
}

func (ms *memStore) DeleteItem(_ context.Context, tableName string, key map[string]types.AttributeValue) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.table(tableName), ms.itemKey(tableName, key))
	return nil
}

func (ms *memStore) QueryItems(ctx context.Context, tableName string, keyCondition string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	return ms.QueryItemsWithOptions(ctx, tableName, keyCondition, values, names, limit, true)
}

func (ms *memStore) QueryItemsWithOptions(_ context.Context, tableName string, keyCondition string, values map[string]types.AttributeValue, names map[string]string, limit int32, ascending bool) ([]map[string]types.AttributeValue, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	clauses, err := parseKeyCondition(keyCondition, names)
	if err != nil {
		return nil, err
	}

	var matched []map[string]types.AttributeValue
	for _, item := range ms.table(tableName) {
		ok := true
		for _, clause := range clauses {
			if !clause.eval(item, values) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, cloneItem(item))
		}
	}

	rangeKey := memSchemas[tableName].rangeKey
	if rangeKey != "" {
		sort.Slice(matched, func(i, j int) bool {
			less := attrString(matched[i], rangeKey) < attrString(matched[j], rangeKey)
			if ascending {
				return less
			}
			return !less
		})
	}

	if limit > 0 && int32(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (ms *memStore) ScanWithFilter(_ context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var filtered []map[string]types.AttributeValue
	for _, item := range ms.table(tableName) {
		excluded := false
		for field, value := range excludeFields {
			if attrString(item, field) == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, cloneItem(item))
		}
	}

	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

// keyClause is one "field op :placeholder" condition from a
// KeyConditionExpression. Only the operators the services actually use
// are supported.
type keyClause struct {
	field       string
	op          string
	placeholder string
}

func (c keyClause) eval(item map[string]types.AttributeValue, values map[string]types.AttributeValue) bool {
	want, ok := values[c.placeholder].(*types.AttributeValueMemberS)
	if !ok {
		return false
	}
	got := attrString(item, c.field)
	switch c.op {
	case "=":
		return got == want.Value
	case ">":
		return got > want.Value
	case "<":
		return got < want.Value
	}
	return false
}

func parseKeyCondition(expr string, names map[string]string) ([]keyClause, error) {
	var clauses []keyClause
	for _, part := range strings.Split(expr, " AND ") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 3 {
			return nil, fmt.Errorf("memStore: cannot parse condition %q", part)
		}
		field := fields[0]
		if resolved, ok := names[field]; ok {
			field = resolved
		}
		field = strings.TrimPrefix(field, "#")
		clauses = append(clauses, keyClause{field: field, op: fields[1], placeholder: fields[2]})
	}
	return clauses, nil
}

// testEnv wires the full service stack onto a memStore.
type testEnv struct {
	store    *memStore
	profiles *UserProfileService
	matches  *MatchService
	chat     *ChatService
	swipe    *SwipeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	profiles := &UserProfileService{Dynamo: store}
	matches := &MatchService{Dynamo: store}
	chat := NewChatService(store, matches)
	swipe := &SwipeService{Dynamo: store, Profiles: profiles, Matches: matches, Chat: chat}
	return &testEnv{store: store, profiles: profiles, matches: matches, chat: chat, swipe: swipe}
}

func (env *testEnv) seedProfile(t *testing.T, userID, role string) {
	t.Helper()
	_, err := env.profiles.AddUserProfile(context.Background(), models.UserProfile{
		UserID:   userID,
		Role:     role,
		Name:     "Test " + userID,
		Location: "Berlin",
	})
	require.NoError(t, err)
}

// freezeClock pins the chat clock to a fixed instant so every append
// hits the monotonic-timestamp guard.
func (env *testEnv) freezeClock(at time.Time) {
	env.chat.now = func() time.Time { return at }
}
