package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/payu-console/checkout"
	"github.com/mstgnz/payu-console/infra/config"
	"github.com/mstgnz/payu-console/infra/response"
)

// CredentialsHandler handles merchant credential profile requests
type CredentialsHandler struct {
	storage  *config.SQLiteStorage
	validate *validator.Validate
}

// NewCredentialsHandler creates a new credentials handler
func NewCredentialsHandler(storage *config.SQLiteStorage, validate *validator.Validate) *CredentialsHandler {
	return &CredentialsHandler{
		storage:  storage,
		validate: validate,
	}
}

// ProfileRequest is the write payload for a credential profile. The salt only
// travels inbound; responses expose its masked form.
type ProfileRequest struct {
	MerchantKey string `json:"merchantKey" validate:"required"`
	Salt        string `json:"salt" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ProfileView is the read shape of a profile with the salt masked.
type ProfileView struct {
	Name        string `json:"name"`
	MerchantKey string `json:"merchantKey"`
	MaskedSalt  string `json:"maskedSalt"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toView(p config.CredentialProfile) ProfileView {
	creds := checkout.Credentials{Key: p.MerchantKey, Salt: p.Salt}
	return ProfileView{
		Name:        p.Name,
		MerchantKey: p.MerchantKey,
		MaskedSalt:  creds.MaskedSalt(),
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// List returns all stored profiles with masked salts
func (h *CredentialsHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.storage.LoadAllProfiles()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load profiles", err)
		return
	}

	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, toView(p))
	}

	response.Success(w, http.StatusOK, "Profiles retrieved", map[string]any{
		"profiles": views,
		"count":    len(views),
	})
}

// Get returns a single profile by name
func (h *CredentialsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	profile, err := h.storage.LoadProfile(name)
	if err != nil {
		if errors.Is(err, config.ErrProfileNotFound) {
			response.Error(w, http.StatusNotFound, "Profile not found", err)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved", toView(profile))
}

// Put creates or updates a profile by name
func (h *CredentialsHandler) Put(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.Error(w, http.StatusBadRequest, "Profile name is required", nil)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	profile := config.CredentialProfile{
		Name:        name,
		MerchantKey: req.MerchantKey,
		Salt:        req.Salt,
		Description: req.Description,
	}

	if err := h.storage.SaveProfile(profile); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}

	saved, err := h.storage.LoadProfile(name)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load saved profile", err)
		return
	}

	response.Success(w, http.StatusOK, "Profile saved", toView(saved))
}

// Delete removes a profile by name
func (h *CredentialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.storage.DeleteProfile(name); err != nil {
		if errors.Is(err, config.ErrProfileNotFound) {
			response.Error(w, http.StatusNotFound, "Profile not found", err)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to delete profile", err)
		return
	}

	response.Success(w, http.StatusOK, "Profile deleted", map[string]string{"name": name})
}
