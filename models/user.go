package models

import "fmt"

// DefaultIntroduction is the placeholder written into new profiles.
const DefaultIntroduction = "Hi! I haven't written an introduction yet."

// User is the profile document stored in the `users` collection. Unlike
// the other collections it is keyed by the identity provider's account
// id, assigned once at signup and never reused.
type User struct {
	UID          string   `bson:"_id" json:"uid"`
	Email        string   `bson:"email" json:"email"`
	Name         string   `bson:"name" json:"name"` // unique within the collection
	StudentID    string   `bson:"studentId,omitempty" json:"studentId,omitempty"`
	Introduction string   `bson:"introduction,omitempty" json:"introduction,omitempty"`
	ImageURL     string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Roles        []Role   `bson:"roles" json:"roles"`
	Projects     []string `bson:"projects" json:"projects"` // project display names
}

// Validate checks the shape of a user document. The store calls this on
// every read so that malformed documents surface as errors instead of
// flowing through as half-empty structs.
func (u User) Validate() error {
	if u.UID == "" {
		return fmt.Errorf("missing uid")
	}
	if u.Email == "" {
		return fmt.Errorf("user %s: missing email", u.UID)
	}
	if u.Name == "" {
		return fmt.Errorf("user %s: missing name", u.UID)
	}
	if len(u.Roles) == 0 {
		return fmt.Errorf("user %s: roles must not be empty", u.UID)
	}
	for _, r := range u.Roles {
		if !r.Valid() {
			return fmt.Errorf("user %s: unknown role %q", u.UID, r)
		}
	}
	return nil
}

func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserProfileUpdate carries the fields a profile edit may change. Nil
// means "leave as is".
type UserProfileUpdate struct {
	Name         *string
	StudentID    *string
	Introduction *string
	ImageURL     *string
}

// Empty reports whether the update would change nothing.
func (u UserProfileUpdate) Empty() bool {
	return u.Name == nil && u.StudentID == nil && u.Introduction == nil && u.ImageURL == nil
}
