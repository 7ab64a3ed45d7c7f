// contest-platform/services/registration.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"contest-platform/models"
	"contest-platform/store"
)

// RegistrationService owns the signup flow: create the account at the
// identity provider, allocate a unique display name, write the profile
// document, and compensate by deleting the account if the profile write
// fails.
type RegistrationService struct {
	Store    store.Interface
	Identity IdentityProvider
}

func NewRegistrationService(st store.Interface, identity IdentityProvider) *RegistrationService {
	return &RegistrationService{Store: st, Identity: identity}
}

type RegistrationInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
}

// MinPasswordLength is checked locally before any external call so that
// a weak password never leaves an orphaned account behind.
const MinPasswordLength = 6

func (in RegistrationInput) validate() error {
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: email %q is not an address", models.ErrValidationFailed, in.Email)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", models.ErrValidationFailed)
	}
	if len(in.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password shorter than %d characters", models.ErrWeakCredential, MinPasswordLength)
	}
	return nil
}

// Register runs the two-system signup. Ordering matters: the identity
// account is created first, so every failure after that point triggers
// a best-effort DeleteIdentity. If the cleanup itself fails the caller
// gets ErrCompensationFailed, which operators treat as an orphaned
// account to remove by hand.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (models.User, error) {
	if err := in.validate(); err != nil {
		return models.User{}, err
	}

	identity, err := s.Identity.CreateIdentity(ctx, in.Email, in.Password)
	if err != nil {
		return models.User{}, err
	}

	name, err := s.Store.AllocateName(ctx, store.UsersCollection, "name", in.Name)
	if err != nil {
		return models.User{}, s.compensate(ctx, identity.AccountID, err)
	}

	user := models.User{
		UID:          identity.AccountID,
		Email:        in.Email,
		Name:         name,
		StudentID:    strings.TrimSpace(in.StudentID),
		Introduction: models.DefaultIntroduction,
		Roles:        []models.Role{models.RoleGuest},
		Projects:     []string{},
	}
	if err := s.Store.CreateUserProfile(ctx, user); err != nil {
		return models.User{}, s.compensate(ctx, identity.AccountID, err)
	}

	log.Printf("✅ [REGISTER] created profile %s (%s)", user.Name, user.UID)
	return user, nil
}

// compensate deletes the just-created identity account after a failure
// further down the flow.
func (s *RegistrationService) compensate(ctx context.Context, accountID string, cause error) error {
	if delErr := s.Identity.DeleteIdentity(ctx, accountID); delErr != nil {
		log.Printf("🚨 [REGISTER] orphaned identity %s: profile failed (%v) and cleanup failed (%v)", accountID, cause, delErr)
		return fmt.Errorf("%w: account %s: %v", models.ErrCompensationFailed, accountID, cause)
	}
	log.Printf("⚠️ [REGISTER] rolled back identity %s after: %v", accountID, cause)
	return fmt.Errorf("%w: %v", models.ErrProfileWriteFailed, cause)
}

// RegisterUser handles POST /register.
func (s *RegistrationService) RegisterUser(c *fiber.Ctx) error {
	var in RegistrationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := s.Register(c.Context(), in)
	if err != nil {
		return httpError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
