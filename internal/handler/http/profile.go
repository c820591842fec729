package http

import (
	"encoding/json"
	"net/http"

	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
)

// updateProfile patches the caller's own profile. The target account is
// always the authenticated one; there is no way to patch somebody else.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	// Unknown keys are rejected outright; the patchable field set is closed
	// and anything outside it (role, lock flags, credentials) is an attempt
	// to smuggle a restricted change.
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var patch models.ProfilePatch
	if err := decoder.Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.ProfileService.UpdateProfile(ctx, accountID, patch)
	if err != nil {
		log.Err(err).Str("account_id", accountID.String()).Msg("profile update ended with error")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// upgradeProfessional flips the target account to professional status. The
// caller's role decides whether the operation is allowed; an insufficient
// role and a nonexistent target both yield 403 without revealing which.
func (h *Handler) upgradeProfessional(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	role, ok := utils.GetRoleFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	targetID, ok := accountIDFromURL(w, r)
	if !ok {
		return
	}

	account, allowed, err := h.services.ProfileService.UpgradeProfessionalStatus(ctx, models.Role(role), targetID)
	if err != nil {
		log.Err(err).Str("target_id", targetID.String()).Msg("professional upgrade ended with error")
		writeError(w, err)
		return
	}
	if !allowed {
		http.Error(w, "professional upgrade denied", http.StatusForbidden)
		return
	}

	log.Info().Str("target_id", targetID.String()).Msg("account upgraded to professional")

	utils.WriteJSON(w, account, http.StatusOK)
}
