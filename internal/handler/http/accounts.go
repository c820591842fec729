package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// listAccounts returns one page of accounts. Pagination is controlled by the
// skip and limit query parameters; limit is clamped to maxPageLimit.
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	skip := parseQueryUint(r, "skip", 0)
	limit := parseQueryUint(r, "limit", defaultPageLimit)
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	accounts, total, err := h.services.AccountService.List(ctx, skip, limit)
	if err != nil {
		log.Err(err).Msg("account listing ended with error")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.AccountListResponse{
		Items: accounts,
		Total: total,
		Skip:  int(skip),
		Limit: int(limit),
	}, http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromURL(w, r)
	if !ok {
		return
	}

	account, err := h.services.AccountService.GetByID(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("account lookup ended with error")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) unlockAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromURL(w, r)
	if !ok {
		return
	}

	unlocked, err := h.services.AccountService.Unlock(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("account unlock ended with error")
		writeError(w, err)
		return
	}
	if !unlocked {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	log.Info().Str("account_id", accountID.String()).Msg("account unlocked")

	utils.WriteJSON(w, models.MessageResponse{Message: "account unlocked"}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromURL(w, r)
	if !ok {
		return
	}

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	reset, err := h.services.AccountService.ResetPassword(ctx, accountID, req.NewPassword)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("password reset ended with error")
		writeError(w, err)
		return
	}
	if !reset {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	log.Info().Str("account_id", accountID.String()).Msg("password reset by administrator")

	utils.WriteJSON(w, models.MessageResponse{Message: "password reset"}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := accountIDFromURL(w, r)
	if !ok {
		return
	}

	deleted, err := h.services.AccountService.Delete(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("account deletion ended with error")
		writeError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	log.Info().Str("account_id", accountID.String()).Msg("account deleted")

	w.WriteHeader(http.StatusNoContent)
}

// accountIDFromURL parses the {accountID} route parameter. On failure it
// writes 400 and reports false.
func accountIDFromURL(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		http.Error(w, "invalid account id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return accountID, true
}

// parseQueryUint reads an unsigned integer query parameter, falling back to
// def when absent or malformed.
func parseQueryUint(r *http.Request, name string, def uint64) uint64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return def
	}
	return value
}
