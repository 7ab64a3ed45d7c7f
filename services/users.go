// contest-platform/services/users.go
package services

import (
	"context"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"

	"contest-platform/models"
	"contest-platform/store"
	"contest-platform/utils"
)

// UserService owns the profile surface: who am I, profile edits (with
// rename re-allocation), avatar upload, listing and fuzzy search.
type UserService struct {
	Store store.Interface
}

func NewUserService(st store.Interface) *UserService {
	return &UserService{Store: st}
}

// ProfileUpdateInput is the wire shape for PATCH /users/me. Absent
// fields are left untouched.
type ProfileUpdateInput struct {
	Name         *string `json:"name"`
	StudentID    *string `json:"studentId"`
	Introduction *string `json:"introduction"`
}

// UpdateMe applies a profile edit. A name change goes through the
// allocator, so the stored name may come back with a suffix when the
// requested one is taken. Denormalized name copies on existing projects
// are left alone; the audit worker reports the drift.
func (s *UserService) UpdateMe(ctx context.Context, session *models.Session, in ProfileUpdateInput) (models.User, error) {
	if session == nil {
		return models.User{}, models.ErrNotAuthenticated
	}

	current, err := s.Store.GetUser(ctx, session.UID)
	if err != nil {
		return models.User{}, err
	}

	upd := models.UserProfileUpdate{
		StudentID:    in.StudentID,
		Introduction: in.Introduction,
	}
	// Compare in the same normal form the allocator stores, so
	// re-submitting your own name in a decomposed encoding is a no-op
	// instead of a self-collision.
	if in.Name != nil && strings.TrimSpace(norm.NFC.String(*in.Name)) != current.Name {
		allocated, err := s.Store.AllocateName(ctx, store.UsersCollection, "name", *in.Name)
		if err != nil {
			return models.User{}, err
		}
		upd.Name = &allocated
	}
	if upd.Empty() {
		return current, nil
	}

	if err := s.Store.UpdateUserProfile(ctx, session.UID, upd); err != nil {
		return models.User{}, err
	}
	return s.Store.GetUser(ctx, session.UID)
}

// GetMe handles GET /users/me.
func (s *UserService) GetMe(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return httpError(c, models.ErrNotAuthenticated)
	}

	user, err := s.Store.GetUser(c.Context(), session.UID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(user)
}

// UpdateProfile handles PATCH /users/me.
func (s *UserService) UpdateProfile(c *fiber.Ctx) error {
	var in ProfileUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := s.UpdateMe(c.Context(), sessionFromCtx(c), in)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(user)
}

// UploadAvatar handles POST /users/me/avatar. The image goes to object
// storage and the profile keeps only the public URL.
func (s *UserService) UploadAvatar(c *fiber.Ctx) error {
	session := sessionFromCtx(c)
	if session == nil {
		return httpError(c, models.ErrNotAuthenticated)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := "avatars/" + slug.Make(session.Name) + "-" + uuid.NewString() + ext
	imageURL, err := utils.UploadImage(fileHeader, key)
	if err != nil {
		log.Printf("❌ [AVATAR] upload for %s failed: %v", session.UID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "avatar upload failed"})
	}

	if err := s.Store.UpdateUserProfile(c.Context(), session.UID, models.UserProfileUpdate{ImageURL: &imageURL}); err != nil {
		return httpError(c, err)
	}
	return c.JSON(fiber.Map{"imageUrl": imageURL})
}

// GetAllUsers handles GET /users.
func (s *UserService) GetAllUsers(c *fiber.Ctx) error {
	users, err := s.Store.ListUsers(c.Context())
	if err != nil {
		return httpError(c, err)
	}

	res := make([]UserSummary, len(users))
	for i, u := range users {
		res[i] = summarize(u)
	}
	return c.JSON(res)
}

// UserSummary is the public listing shape; email and student id stay
// off the wire.
type UserSummary struct {
	UID      string        `json:"uid"`
	Name     string        `json:"name"`
	ImageURL string        `json:"imageUrl,omitempty"`
	Roles    []models.Role `json:"roles"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{UID: u.UID, Name: u.Name, ImageURL: u.ImageURL, Roles: u.Roles}
}

// SearchUsers handles GET /users/search?q=&limit=.
func (s *UserService) SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q", ""))
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	users, err := s.Store.ListUsers(c.Context())
	if err != nil {
		return httpError(c, err)
	}

	matched := searchByName(users, query)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	res := make([]UserSummary, len(matched))
	for i, u := range matched {
		res[i] = summarize(u)
	}
	return c.JSON(res)
}

// searchByName ranks users by fuzzy match against the query, closest
// first. An empty query returns everyone in name order. Ranks are
// resolved back through their original index; names that differ only in
// case are distinct users and must both survive.
func searchByName(users []models.User, query string) []models.User {
	if query == "" {
		out := make([]models.User, len(users))
		copy(out, users)
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}

	lowered := make([]string, len(users))
	for i, u := range users {
		lowered[i] = strings.ToLower(u.Name)
	}

	ranks := fuzzy.RankFind(strings.ToLower(query), lowered)
	sort.Sort(ranks)

	out := make([]models.User, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, users[r.OriginalIndex])
	}
	return out
}

// PublicProfile is the profile shape served to anyone; email and
// student id never appear here, only on the owner's /users/me view.
type PublicProfile struct {
	UID          string        `json:"uid"`
	Name         string        `json:"name"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Introduction string        `json:"introduction,omitempty"`
	Roles        []models.Role `json:"roles"`
	Projects     []string      `json:"projects"`
}

// GetUserProfile handles GET /users/:name, a public profile lookup by
// display name.
func (s *UserService) GetUserProfile(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user name"})
	}

	u, err := s.Store.GetUserByName(c.Context(), name)
	if err != nil {
		return httpError(c, err)
	}
	profile := PublicProfile{
		UID:          u.UID,
		Name:         u.Name,
		ImageURL:     u.ImageURL,
		Introduction: u.Introduction,
		Roles:        u.Roles,
		Projects:     u.Projects,
	}
	if profile.Projects == nil {
		profile.Projects = []string{}
	}
	return c.JSON(profile)
}
