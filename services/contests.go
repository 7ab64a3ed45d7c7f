// contest-platform/services/contests.go
package services

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"contest-platform/models"
	"contest-platform/store"
)

// ContestService owns the contest listing and the admin surface for
// creating contests and moving them between phases.
type ContestService struct {
	Store store.Interface
}

func NewContestService(st store.Interface) *ContestService {
	return &ContestService{Store: st}
}

// GetAllContests handles GET /contests. Finished contests are hidden
// unless ?includeFinished=true.
func (s *ContestService) GetAllContests(c *fiber.Ctx) error {
	includeFinished := c.Query("includeFinished", "false") == "true"

	contests, err := s.Store.ListContests(c.Context(), includeFinished)
	if err != nil {
		return httpError(c, err)
	}
	if contests == nil {
		contests = []models.Contest{}
	}
	return c.JSON(contests)
}

// CreateContestHandler handles POST /admin/contests.
func (s *ContestService) CreateContestHandler(c *fiber.Ctx) error {
	var in struct {
		Term        string   `json:"term"`
		Description string   `json:"description"`
		Staff       []string `json:"staff"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.Term) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "term is required"})
	}

	contest := models.Contest{
		ID:          uuid.NewString(),
		Term:        strings.TrimSpace(in.Term),
		Description: strings.TrimSpace(in.Description),
		Staff:       in.Staff,
		Phase:       models.PhasePlanned,
	}
	if contest.Staff == nil {
		contest.Staff = []string{}
	}

	if err := s.Store.CreateContest(c.Context(), contest); err != nil {
		return httpError(c, err)
	}

	log.Printf("🛠️ [ADMIN] contest %s created for term %s", contest.ID, contest.Term)
	return c.Status(fiber.StatusCreated).JSON(contest)
}

// UpdateContestPhase handles PATCH /admin/contests/:id/phase.
func (s *ContestService) UpdateContestPhase(c *fiber.Ctx) error {
	id := c.Params("id")

	var body struct {
		Phase string `json:"phase"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	phase, err := models.ParsePhase(body.Phase)
	if err != nil {
		return httpError(c, err)
	}
	if err := s.Store.SetContestPhase(c.Context(), id, phase); err != nil {
		return httpError(c, err)
	}

	log.Printf("🛠️ [ADMIN] contest %s moved to phase %s", id, phase)
	return c.JSON(fiber.Map{"id": id, "phase": phase})
}
