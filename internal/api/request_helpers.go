package api

import (
	"net/http"

	"github.com/dreis/minhasfinancas-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// msgInvalidEntryID answers a path {id} that is not a UUID.
const msgInvalidEntryID = "Invalid entry ID"

// callerAndEntryID returns the authenticated user and the {id} path
// parameter. On failure it has already written the response.
func callerAndEntryID(w http.ResponseWriter, r *http.Request) (userID, entryID uuid.UUID, ok bool) {
	userID, ok = shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgUnauthenticated)
		return uuid.Nil, uuid.Nil, false
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidEntryID, err)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, entryID, true
}
