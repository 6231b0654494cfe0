// Package server exposes the dashboard HTTP API.
package server

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zorak1103/porthall/internal/docker"
	"github.com/zorak1103/porthall/internal/names"
	"github.com/zorak1103/porthall/internal/store"
	"github.com/zorak1103/porthall/internal/syncer"
	"github.com/zorak1103/porthall/internal/version"
)

// Storage is the store surface the handlers need.
type Storage interface {
	CreateShortcut(ctx context.Context, sc *store.Shortcut) (int64, error)
	GetShortcut(ctx context.Context, id int64) (*store.Shortcut, error)
	ListShortcuts(ctx context.Context) ([]*store.Shortcut, error)
	UpdateShortcut(ctx context.Context, sc *store.Shortcut) error
	DeleteShortcut(ctx context.Context, id int64) error
	CreateSection(ctx context.Context, sec *store.Section) (int64, error)
	ListSections(ctx context.Context) ([]*store.Section, error)
	UpdateSection(ctx context.Context, sec *store.Section) error
	DeleteSection(ctx context.Context, id int64) error
}

// Synchronizer runs one reconciliation pass. Satisfied by syncer.Syncer.
type Synchronizer interface {
	Synchronize(ctx context.Context, opts syncer.Options) (syncer.Result, error)
}

// IconPreviewer returns the unvalidated icon URL for a name.
// Satisfied by icons.Resolver.
type IconPreviewer interface {
	CatalogURL(raw string) string
}

// Handler carries the collaborators behind the HTTP routes.
type Handler struct {
	storage   Storage
	inventory syncer.Inventory
	sync      Synchronizer
	previewer IconPreviewer
	syncOpts  syncer.Options
}

// NewHandler wires the API handlers to their collaborators.
func NewHandler(storage Storage, inventory syncer.Inventory, sync Synchronizer, previewer IconPreviewer, syncOpts syncer.Options) *Handler {
	return &Handler{
		storage:   storage,
		inventory: inventory,
		sync:      sync,
		previewer: previewer,
		syncOpts:  syncOpts,
	}
}

// NewApp builds the fiber application with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "porthall " + version.GetVersion(),
		DisableStartupMessage: true,
	})

	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	shortcuts := v1.Group("/shortcuts")
	shortcuts.Get("/", h.ListShortcuts)
	shortcuts.Post("/", h.CreateShortcut)
	shortcuts.Get("/:id", h.GetShortcut)
	shortcuts.Put("/:id", h.UpdateShortcut)
	shortcuts.Delete("/:id", h.DeleteShortcut)

	sections := v1.Group("/sections")
	sections.Get("/", h.ListSections)
	sections.Post("/", h.CreateSection)
	sections.Put("/:id", h.UpdateSection)
	sections.Delete("/:id", h.DeleteSection)

	v1.Get("/containers", h.ListContainers)
	v1.Post("/sync", h.Synchronize)
	v1.Get("/icons/resolve", h.ResolveIcon)

	return app
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": version.GetVersion()})
}

// ShortcutRequest is the JSON body for creating or updating a shortcut.
// Container identity is accepted as a single name; the match name is always
// derived server-side so a custom link can never smuggle one in.
type ShortcutRequest struct {
	DisplayName   string `json:"display_name"`
	Icon          string `json:"icon"`
	URL           string `json:"url"`
	Port          int    `json:"port"`
	IsFavorite    bool   `json:"is_favorite"`
	SectionID     int64  `json:"section_id"`
	ContainerName string `json:"container_name"`
}

func (r *ShortcutRequest) toShortcut() *store.Shortcut {
	sc := &store.Shortcut{
		DisplayName: r.DisplayName,
		Icon:        r.Icon,
		URL:         r.URL,
		Port:        r.Port,
		IsFavorite:  r.IsFavorite,
		SectionID:   r.SectionID,
	}
	if r.ContainerName != "" {
		base := names.BaseName(r.ContainerName)
		sc.Container = &store.ContainerLink{Name: base, MatchName: base}
	}
	return sc
}

// ListShortcuts returns all shortcuts.
func (h *Handler) ListShortcuts(c *fiber.Ctx) error {
	shortcuts, err := h.storage.ListShortcuts(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	if shortcuts == nil {
		shortcuts = []*store.Shortcut{}
	}
	return c.JSON(shortcuts)
}

// GetShortcut returns one shortcut by ID.
func (h *Handler) GetShortcut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid shortcut id")
	}

	sc, err := h.storage.GetShortcut(c.Context(), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "shortcut not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(sc)
}

// CreateShortcut persists a new shortcut.
func (h *Handler) CreateShortcut(c *fiber.Ctx) error {
	var req ShortcutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.DisplayName == "" {
		return badRequest(c, "display_name is required")
	}

	sc := req.toShortcut()
	if _, err := h.storage.CreateShortcut(c.Context(), sc); err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sc)
}

// UpdateShortcut rewrites an existing shortcut.
func (h *Handler) UpdateShortcut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid shortcut id")
	}

	var req ShortcutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.DisplayName == "" {
		return badRequest(c, "display_name is required")
	}

	sc := req.toShortcut()
	sc.ID = int64(id)

	// Preserve the runtime ID the syncer recorded; the API only moves the
	// human-facing link.
	if sc.Container != nil {
		if existing, getErr := h.storage.GetShortcut(c.Context(), sc.ID); getErr == nil &&
			existing.Container != nil && existing.Container.Name == sc.Container.Name {
			sc.Container.RuntimeID = existing.Container.RuntimeID
		}
	}

	err = h.storage.UpdateShortcut(c.Context(), sc)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "shortcut not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(sc)
}

// DeleteShortcut removes a shortcut. This is the only path that deletes
// records; synchronization never does.
func (h *Handler) DeleteShortcut(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid shortcut id")
	}

	err = h.storage.DeleteShortcut(c.Context(), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "shortcut not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SectionRequest is the JSON body for creating or updating a section.
type SectionRequest struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ListSections returns all sections.
func (h *Handler) ListSections(c *fiber.Ctx) error {
	sections, err := h.storage.ListSections(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	if sections == nil {
		sections = []*store.Section{}
	}
	return c.JSON(sections)
}

// CreateSection persists a new section.
func (h *Handler) CreateSection(c *fiber.Ctx) error {
	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	sec := &store.Section{Name: req.Name, Position: req.Position}
	if _, err := h.storage.CreateSection(c.Context(), sec); err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sec)
}

// UpdateSection rewrites a section.
func (h *Handler) UpdateSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid section id")
	}

	var req SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	sec := &store.Section{ID: int64(id), Name: req.Name, Position: req.Position}
	err = h.storage.UpdateSection(c.Context(), sec)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "section not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(sec)
}

// DeleteSection removes a section; its shortcuts become unsectioned.
func (h *Handler) DeleteSection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid section id")
	}

	err = h.storage.DeleteSection(c.Context(), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "section not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListContainers returns the live container inventory. An unreachable
// daemon yields 503, not 500: the dashboard stays usable from stored data.
func (h *Handler) ListContainers(c *fiber.Ctx) error {
	containers, err := h.inventory.ListContainers(c.Context(), docker.FilterOptions{
		IncludeAll: h.syncOpts.IncludeStopped,
	})
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "container engine unreachable",
		})
	}
	if containers == nil {
		containers = []docker.Container{}
	}
	return c.JSON(containers)
}

// Synchronize runs one reconciliation pass and returns its counts.
func (h *Handler) Synchronize(c *fiber.Ctx) error {
	result, err := h.sync.Synchronize(c.Context(), h.syncOpts)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(result)
}

// ResolveIcon returns the unvalidated catalog URL for a name. The frontend
// uses this for instant previews and falls back on image-load failure, so
// skipping the existence check here is acceptable.
func (h *Handler) ResolveIcon(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return badRequest(c, "name query parameter is required")
	}
	return c.JSON(fiber.Map{"name": name, "icon": h.previewer.CatalogURL(name)})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
