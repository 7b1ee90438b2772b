package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dreis/minhasfinancas-api/internal/api/shared"
	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/service"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

// EntryHandler handles financial entry requests. Every route acts on the
// authenticated user's entries only.
type EntryHandler struct {
	entryService service.EntryService
	logger       *slog.Logger
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService service.EntryService, logger *slog.Logger) *EntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryHandler{
		entryService: entryService,
		logger:       logger.With(slog.String("component", "entry_handler")),
	}
}

// Create handles POST /api/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	entry := req.toEntry(uuid.Nil, userID)
	saved, err := h.entryService.Save(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, entryToResponse(saved))
}

// Update handles PUT /api/entries/{id}. An omitted status keeps the current one.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := callerAndEntryID(w, r)
	if !ok {
		return
	}

	var req EntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	existing, err := h.loadOwned(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	entry := req.toEntry(entryID, userID)
	if entry.Status == "" {
		entry.Status = existing.Status
	} else if !entry.Status.IsValid() {
		HandleAPIError(w, r, domain.NewBusinessRuleError(domain.MsgInvalidStatus))
		return
	}

	updated, err := h.entryService.Update(r.Context(), entry)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// Delete handles DELETE /api/entries/{id}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := callerAndEntryID(w, r)
	if !ok {
		return
	}

	existing, err := h.loadOwned(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.entryService.Delete(r.Context(), existing); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PUT /api/entries/{id}/status.
func (h *EntryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := callerAndEntryID(w, r)
	if !ok {
		return
	}

	var req StatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	existing, err := h.loadOwned(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.entryService.ChangeStatus(r.Context(), existing, domain.EntryStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entryToResponse(updated))
}

// Search handles GET /api/entries. Query parameters description, month,
// year, type and status narrow the result.
func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgUnauthenticated)
		return
	}

	q := r.URL.Query()
	filter := store.EntryFilter{
		Description: q.Get("description"),
		Type:        domain.EntryType(q.Get("type")),
		Status:      domain.EntryStatus(q.Get("status")),
		UserID:      userID,
	}

	var err error
	if filter.Month, err = optionalInt(q.Get("month")); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid month")
		return
	}
	if filter.Year, err = optionalInt(q.Get("year")); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid year")
		return
	}

	entries, err := h.entryService.Search(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entriesToResponse(entries))
}

// loadOwned fetches an entry and hides it when another user owns it.
func (h *EntryHandler) loadOwned(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	entry, err := h.entryService.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		logger.FromContextOrDefault(ctx, h.logger).Warn("entry access denied",
			"entry_id", entryID,
			"user_id", userID)
		return nil, errNotOwned
	}
	return entry, nil
}

func (req EntryRequest) toEntry(id, userID uuid.UUID) *domain.Entry {
	return &domain.Entry{
		ID:          id,
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		Type:        domain.EntryType(req.Type),
		Status:      domain.EntryStatus(req.Status),
		UserID:      userID,
	}
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
