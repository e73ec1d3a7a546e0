package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/payu-console/checkout"
	"github.com/mstgnz/payu-console/infra/response"
)

// CheckoutHandler handles checkout attempt requests
type CheckoutHandler struct {
	console  *checkout.Console
	validate *validator.Validate
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(console *checkout.Console, validate *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{
		console:  console,
		validate: validate,
	}
}

// SubmitResponse carries everything a browser needs to post the redirect form.
type SubmitResponse struct {
	Endpoint    string           `json:"endpoint"`
	TxnID       string           `json:"txnid"`
	MerchantKey string           `json:"merchant_key"`
	Hash        string           `json:"hash"`
	Params      []checkout.Param `json:"params"`
}

// buildAttempt decodes the body, resolves the flow from the URL and runs the
// pipeline. On error it writes the response itself and returns nil.
func (h *CheckoutHandler) buildAttempt(w http.ResponseWriter, r *http.Request) (*checkout.Request, *checkout.Attempt) {
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return nil, nil
	}

	flowName := chi.URLParam(r, "flow")
	flow, err := checkout.ParseFlow(flowName)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown checkout flow", err)
		return nil, nil
	}
	req.Flow = flow

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return nil, nil
	}

	attempt, err := h.console.Build(&req)
	if err != nil {
		writeBuildError(w, err)
		return nil, nil
	}

	return &req, attempt
}

// writeBuildError maps pipeline errors onto HTTP status codes.
func writeBuildError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	if errors.As(err, &vErr) {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	var nErr *checkout.NumberError
	if errors.As(err, &nErr) {
		response.Error(w, http.StatusBadRequest, "Invalid number", err)
		return
	}

	if errors.Is(err, checkout.ErrDigestUnavailable) {
		response.Error(w, http.StatusInternalServerError, "Hash computation unavailable", err)
		return
	}

	response.Error(w, http.StatusInternalServerError, "Checkout attempt failed", err)
}

// Submit runs the pipeline and returns the ordered form fields
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	_, attempt := h.buildAttempt(w, r)
	if attempt == nil {
		return
	}

	resp := SubmitResponse{
		Endpoint:    attempt.Endpoint,
		TxnID:       attempt.TxnID,
		MerchantKey: attempt.Credentials.Key,
		Hash:        attempt.Hash,
		Params:      attempt.FormFields(),
	}

	response.Success(w, http.StatusOK, "Checkout attempt built", resp)
}

// Debug runs the pipeline and returns the annotated parameter table
func (h *CheckoutHandler) Debug(w http.ResponseWriter, r *http.Request) {
	_, attempt := h.buildAttempt(w, r)
	if attempt == nil {
		return
	}

	response.Success(w, http.StatusOK, "Debug table built", attempt.DebugTable())
}

// Curl runs the pipeline and returns an equivalent curl command
func (h *CheckoutHandler) Curl(w http.ResponseWriter, r *http.Request) {
	_, attempt := h.buildAttempt(w, r)
	if attempt == nil {
		return
	}

	response.Success(w, http.StatusOK, "Curl command built", map[string]string{
		"command": attempt.CurlCommand(),
	})
}

// Code runs the pipeline and returns a server-side snippet in the requested language
func (h *CheckoutHandler) Code(w http.ResponseWriter, r *http.Request) {
	lang, err := checkout.ParseCodeLanguage(chi.URLParam(r, "language"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Unknown code language", err)
		return
	}

	req, attempt := h.buildAttempt(w, r)
	if attempt == nil {
		return
	}

	snippet, err := checkout.GenerateCode(req, attempt, lang)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Code generation failed", err)
		return
	}

	response.Success(w, http.StatusOK, "Code snippet built", map[string]string{
		"language": string(lang),
		"code":     snippet,
	})
}
