package api

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/models"
	"kwtaxonomy/internal/validation"
)

// maxImportRecords bounds a single import request.
const maxImportRecords = 50000

// ProjectStore is the storage the project endpoints write to.
type ProjectStore interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	InsertKeywordRecords(ctx context.Context, projectID uuid.UUID, records []models.KeywordRecord) (int, error)
}

// ProjectHandler handles project creation and record import via JSON API.
// Imports move the project's version forward, which retires its cached groups.
type ProjectHandler struct {
	store ProjectStore
}

// NewProjectHandler creates a new API project handler.
func NewProjectHandler(store ProjectStore) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// Create creates a new project.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Name = strings.TrimSpace(body.Name)
	if valid, msg := validation.ValidateProjectName(body.Name); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	project, err := h.store.CreateProject(c.Context(), body.Name)
	if err != nil {
		return handleError(c, err, "failed to create project")
	}

	return jsonCreated(c, project)
}

// Get returns a single project by ID.
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.store.GetProject(c.Context(), id)
	if err != nil {
		return handleError(c, err, "failed to fetch project")
	}

	return jsonSuccess(c, project)
}

// Import stores keyword records for a project. The batch is rejected whole if
// any record is invalid.
func (h *ProjectHandler) Import(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var body groupRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(body.Records) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "records are required")
	}
	if len(body.Records) > maxImportRecords {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "too many records in one import")
	}

	if err := keywords.Validate(body.Records); err != nil {
		return handleError(c, err, "invalid records")
	}

	inserted, err := h.store.InsertKeywordRecords(c.Context(), id, body.Records)
	if err != nil {
		return handleError(c, err, "failed to import records")
	}

	log.Info().
		Str("project", id.String()).
		Int("inserted", inserted).
		Msg("keyword records imported")

	return jsonCreated(c, models.ImportResponse{ProjectID: id.String(), Inserted: inserted})
}
