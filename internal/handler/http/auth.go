package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/logger"
	"github.com/savelyev-an/accountd/internal/utils"
	"github.com/savelyev-an/accountd/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.AccountService.Register(ctx, req)
	if err != nil {
		log.Err(err).Msg("account registration ended with error")
		writeError(w, err)
		return
	}

	log.Info().Str("account_id", account.ID.String()).Str("role", string(account.Role)).Msg("account registered")

	utils.WriteJSON(w, account, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	account, err := h.services.AccountService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("authentication ended with error")
		writeError(w, err)
		return
	}

	token, err := h.services.AccountService.CreateToken(ctx, account)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("account_id", account.ID.String()).Msg("account successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "Bearer",
	}, http.StatusOK)
}

// verifyEmail consumes a verification token delivered by email. The link
// format is /api/auth/verify-email?account_id=<uuid>&token=<token>.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	accountID, err := uuid.Parse(r.URL.Query().Get("account_id"))
	if err != nil {
		log.Err(err).Msg("invalid account_id query parameter")
		http.Error(w, "invalid account_id", http.StatusBadRequest)
		return
	}

	verified, err := h.services.AccountService.VerifyEmail(ctx, accountID, r.URL.Query().Get("token"))
	if err != nil {
		log.Err(err).Msg("email verification ended with error")
		writeError(w, err)
		return
	}
	if !verified {
		// Unknown account, wrong token or already verified; all three look
		// the same to the caller.
		http.Error(w, "verification token is invalid", http.StatusNotFound)
		return
	}

	log.Info().Str("account_id", accountID.String()).Msg("email verified")

	utils.WriteJSON(w, models.MessageResponse{Message: "email verified"}, http.StatusOK)
}
