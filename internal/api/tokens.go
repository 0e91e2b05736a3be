package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/tokenscope/internal/storage"
	"github.com/dmitrymomot/tokenscope/pkg/logger"
	"github.com/dmitrymomot/tokenscope/pkg/signer"
)

func (h *Handler) listTokens(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to list token records", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list stored tokens")
		return
	}
	if records == nil {
		records = []storage.Record{}
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "jwts": records})
}

// createToken verifies the submitted token and stores it together with the
// verification outcome.
func (h *Handler) createToken(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	var req struct {
		Token  string `json:"token"`
		Name   string `json:"name"`
		Secret string `json:"secret"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "request body must contain a 'token' string")
		return
	}

	secret := req.Secret
	if secret == "" {
		secret = h.cfg.DefaultSecret
	}

	result := signer.Verify(req.Token, secret)

	record := storage.Record{
		ID:     bson.NewObjectID(),
		Token:  req.Token,
		Name:   req.Name,
		Valid:  &result.Valid,
		Secret: secret,
	}
	if !result.Valid {
		record.ErrorKind = verifyErrorKind(result.Err)
	}
	if record.Name == "" {
		record.Name = "JWT " + record.ID.Hex()[:8]
	}

	created, err := h.store.Create(r.Context(), record)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to store token record", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to store token")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"success": true, "jwt": created})
}

func (h *Handler) deleteToken(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respondError(w, http.StatusNotFound, "token record not found")
		case errors.Is(err, storage.ErrInvalidID):
			respondError(w, http.StatusBadRequest, "invalid token record id")
		default:
			h.log.ErrorContext(r.Context(), "failed to delete token record", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to delete token")
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true})
}
