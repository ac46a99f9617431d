package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careconnect_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo Store
}

// AddUserProfile creates or replaces a user profile
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if !models.ValidRole(profile.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, models.RoleCaregiver, models.RoleCareSeeker)
	}
	if profile.CreatedAt == "" {
		profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
		}
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// UpdateUserProfile applies a partial update to an existing profile.
// Only display attributes may change; userId and role are fixed.
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updates provided", ErrInvalidInput)
	}
	for field := range updates {
		switch field {
		case "name", "photoKey", "location", "bio":
		default:
			return nil, fmt.Errorf("%w: field %q is not editable", ErrInvalidInput, field)
		}
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)
	for k, v := range updates {
		updateExpression += " #" + k + " = :" + k + ","
		expressionAttributeValues[":"+k] = &types.AttributeValueMemberS{Value: v}
		expressionAttributeNames["#"+k] = k
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}

	return &updatedProfile, nil
}

// DeleteUserProfile removes a user profile
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, key)
}

// GetDiscoveryFeed returns a snapshot of candidate profiles for userID:
// only the opposite role, never the user themselves, and never a
// candidate the user has already decided on. The slice is a finite
// snapshot; a fresh call produces a fresh one.
func (ups *UserProfileService) GetDiscoveryFeed(ctx context.Context, userID string) ([]models.UserProfile, error) {
	profile, err := ups.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	decided, err := ups.decidedUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch decided candidates: %w", err)
	}

	exclude := map[string]struct{}{userID: {}}
	for id := range decided {
		exclude[id] = struct{}{}
	}

	// Excluding the caller's own role leaves exactly the opposite role.
	var candidates []models.UserProfile
	err = ups.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		if idAttr, ok := item["userId"].(*types.AttributeValueMemberS); ok {
			if _, excluded := exclude[idAttr.Value]; excluded {
				return false
			}
		}
		return true
	}, map[string]string{"role": profile.Role}, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profiles: %w", err)
	}

	log.Printf("Discovery feed for %s: %d candidates (%s)", userID, len(candidates), models.OppositeRole(profile.Role))
	return candidates, nil
}

// decidedUserIDs returns every user userID has already swiped on,
// liked or passed.
func (ups *UserProfileService) decidedUserIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	keyCondition := "#fromUserId = :from"
	expressionValues := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: userID},
	}
	expressionNames := map[string]string{
		"#fromUserId": "fromUserId",
	}

	items, err := ups.Dynamo.QueryItems(ctx, models.LikesTable, keyCondition, expressionValues, expressionNames, 1000)
	if err != nil {
		return nil, err
	}

	decided := make(map[string]struct{}, len(items))
	for _, item := range items {
		var record models.LikeRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			continue
		}
		decided[record.ToUserID] = struct{}{}
	}
	return decided, nil
}
