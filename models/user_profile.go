package models

// Role values for user profiles. Every profile carries exactly one of
// the two; the discovery feed always serves the opposite role.
const (
	RoleCaregiver  = "caregiver"
	RoleCareSeeker = "careseeker"
)

// ValidRole reports whether role is one of the two supported roles.
func ValidRole(role string) bool {
	return role == RoleCaregiver || role == RoleCareSeeker
}

// OppositeRole returns the role a user's discovery feed targets.
func OppositeRole(role string) string {
	if role == RoleCaregiver {
		return RoleCareSeeker
	}
	return RoleCaregiver
}

// UserProfile defines the structure for user profiles. The swipe and
// chat services treat profiles as read-only input; they are created and
// edited through the profile endpoints only.
type UserProfile struct {
	UserID    string   `dynamodbav:"userId" json:"userId"` // Partition Key
	Role      string   `dynamodbav:"role" json:"role"`     // caregiver or careseeker
	Name      string   `dynamodbav:"name,omitempty" json:"name,omitempty"`
	PhotoKey  string   `dynamodbav:"photoKey,omitempty" json:"photoKey,omitempty"` // S3 object key, resolved to a URL on read
	Location  string   `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Bio       string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Rating    int      `dynamodbav:"rating,omitempty" json:"rating,omitempty"`
	Tags      []string `dynamodbav:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "Profiles"
