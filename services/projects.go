// contest-platform/services/projects.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/go-andiamo/splitter"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"contest-platform/models"
	"contest-platform/store"
)

// ProjectService owns project creation and the project listing surface.
type ProjectService struct {
	Store store.Interface
}

func NewProjectService(st store.Interface) *ProjectService {
	return &ProjectService{Store: st}
}

type ProjectInput struct {
	Name        string `json:"name"`
	Term        string `json:"term"`
	TeamName    string `json:"teamName"`
	LeaderName  string `json:"leaderName"`
	Members     string `json:"members"` // comma-separated, quotes keep commas
	Language    string `json:"language"`
	Description string `json:"description"`
	Mentor      string `json:"mentor"`
}

var membersSplitter, _ = splitter.NewSplitter(',', splitter.DoubleQuotes)

// ParseMembers splits a comma-separated member list into trimmed names,
// dropping empties. Double quotes protect names containing commas.
func ParseMembers(raw string) []string {
	parts, err := membersSplitter.Split(raw)
	if err != nil {
		// Unbalanced quotes; fall back to a plain split.
		parts = strings.Split(raw, ",")
	}

	members := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(strings.Trim(strings.TrimSpace(part), `"`))
		if name != "" {
			members = append(members, name)
		}
	}
	return members
}

func (in ProjectInput) validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < 3 {
		return fmt.Errorf("%w: project name needs at least 3 characters", models.ErrValidationFailed)
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.TeamName)) < 2 {
		return fmt.Errorf("%w: team name needs at least 2 characters", models.ErrValidationFailed)
	}
	if strings.TrimSpace(in.LeaderName) == "" {
		return fmt.Errorf("%w: leader name must not be empty", models.ErrValidationFailed)
	}
	if strings.TrimSpace(in.Term) == "" {
		return fmt.Errorf("%w: term must be selected", models.ErrValidationFailed)
	}
	return nil
}

// CreateProject validates the input, allocates a unique project name,
// checks the leader and members against existing profiles, and commits
// the project plus the creator's projects-list entry in one batch.
func (s *ProjectService) CreateProject(ctx context.Context, session *models.Session, in ProjectInput) (models.Project, error) {
	if session == nil {
		return models.Project{}, models.ErrNotAuthenticated
	}
	if err := in.validate(); err != nil {
		return models.Project{}, err
	}

	for _, name := range append([]string{in.LeaderName}, ParseMembers(in.Members)...) {
		exists, err := s.Store.UserNameExists(ctx, strings.TrimSpace(name))
		if err != nil {
			return models.Project{}, err
		}
		if !exists {
			return models.Project{}, fmt.Errorf("%w: no user named %q", models.ErrValidationFailed, name)
		}
	}

	projectName, err := s.Store.AllocateName(ctx, store.ProjectsCollection, "name", in.Name)
	if err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:          uuid.NewString(),
		Name:        projectName,
		Term:        strings.TrimSpace(in.Term),
		TeamName:    strings.TrimSpace(in.TeamName),
		LeaderName:  strings.TrimSpace(in.LeaderName),
		Members:     ParseMembers(in.Members),
		Phase:       models.PhaseRegistered,
		Language:    strings.TrimSpace(in.Language),
		Description: strings.TrimSpace(in.Description),
		Mentor:      strings.TrimSpace(in.Mentor),
	}
	if err := s.Store.CreateProjectForUser(ctx, session.UID, project); err != nil {
		return models.Project{}, err
	}

	log.Printf("✅ [PROJECT] %s created %q for term %s", session.UID, project.Name, project.Term)
	return project, nil
}

// CreateProjectHandler handles POST /projects.
func (s *ProjectService) CreateProjectHandler(c *fiber.Ctx) error {
	var in ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	project, err := s.CreateProject(c.Context(), sessionFromCtx(c), in)
	if err != nil {
		return httpError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetAllProjects handles GET /projects, optionally filtered by ?term=.
func (s *ProjectService) GetAllProjects(c *fiber.Ctx) error {
	projects, err := s.Store.ListProjects(c.Context(), c.Query("term", ""))
	if err != nil {
		return httpError(c, err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(projects)
}

// GetProjectDetails handles GET /projects/:name.
func (s *ProjectService) GetProjectDetails(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project name"})
	}

	project, err := s.Store.GetProjectByName(c.Context(), name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(project)
}

// UpdateProjectPhase handles PATCH /admin/projects/:name/phase.
func (s *ProjectService) UpdateProjectPhase(c *fiber.Ctx) error {
	name, err := pathParam(c, "name")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid project name"})
	}

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
	if err := s.Store.SetProjectPhase(c.Context(), name, phase); err != nil {
		return httpError(c, err)
	}

	log.Printf("🛠️ [ADMIN] project %q moved to phase %s", name, phase)
	return c.JSON(fiber.Map{"name": name, "phase": phase})
}
