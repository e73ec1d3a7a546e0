package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/mstgnz/payu-console/infra/config"
)

func newCredentialsRouter(t *testing.T) *chi.Mux {
	t.Helper()

	storage, err := config.NewSQLiteStorage(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	t.Cleanup(func() { storage.Close() })

	h := NewCredentialsHandler(storage, validator.New())

	r := chi.NewRouter()
	r.Get("/v1/credentials", h.List)
	r.Get("/v1/credentials/{name}", h.Get)
	r.Put("/v1/credentials/{name}", h.Put)
	r.Delete("/v1/credentials/{name}", h.Delete)
	return r
}

func putProfile(t *testing.T, r http.Handler, name string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	data, _ := json.Marshal(body)
	req := httptest.NewRequest("PUT", "/v1/credentials/"+name, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestCredentialsPutAndGet(t *testing.T) {
	r := newCredentialsRouter(t)

	rr := putProfile(t, r, "sandbox", map[string]any{
		"merchantKey": "a4vGC2",
		"salt":        "hKvGJP28d2ZUuCRz5BnDag58QBdCxBli",
		"description": "PayU sandbox pair",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest("GET", "/v1/credentials/sandbox", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var envelope struct {
		Data struct {
			Name        string `json:"name"`
			MerchantKey string `json:"merchantKey"`
			MaskedSalt  string `json:"maskedSalt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if envelope.Data.Name != "sandbox" {
		t.Errorf("name = %q", envelope.Data.Name)
	}
	if envelope.Data.MerchantKey != "a4vGC2" {
		t.Errorf("merchantKey = %q", envelope.Data.MerchantKey)
	}
	if envelope.Data.MaskedSalt != "***xBli" {
		t.Errorf("maskedSalt = %q, want ***xBli", envelope.Data.MaskedSalt)
	}

	// Raw salt must never be in any credentials response
	if strings.Contains(rr.Body.String(), "hKvGJP28d2ZUuCRz5BnDag58QBdCxBli") {
		t.Error("raw salt leaked into response")
	}
}

func TestCredentialsPut_Validation(t *testing.T) {
	r := newCredentialsRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing key", map[string]any{"salt": "s3cret"}},
		{"missing salt", map[string]any{"merchantKey": "a4vGC2"}},
		{"empty body", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := putProfile(t, r, "broken", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}
}

func TestCredentialsList(t *testing.T) {
	r := newCredentialsRouter(t)

	putProfile(t, r, "beta", map[string]any{"merchantKey": "k2", "salt": "salt-two"})
	putProfile(t, r, "alpha", map[string]any{"merchantKey": "k1", "salt": "salt-one"})

	req := httptest.NewRequest("GET", "/v1/credentials", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var envelope struct {
		Data struct {
			Count    int `json:"count"`
			Profiles []struct {
				Name string `json:"name"`
			} `json:"profiles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if envelope.Data.Count != 2 {
		t.Fatalf("count = %d, want 2", envelope.Data.Count)
	}
	// Profiles come back sorted by name
	if envelope.Data.Profiles[0].Name != "alpha" || envelope.Data.Profiles[1].Name != "beta" {
		t.Errorf("profiles out of order: %+v", envelope.Data.Profiles)
	}
}

func TestCredentialsGet_NotFound(t *testing.T) {
	r := newCredentialsRouter(t)

	req := httptest.NewRequest("GET", "/v1/credentials/ghost", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestCredentialsDelete(t *testing.T) {
	r := newCredentialsRouter(t)

	putProfile(t, r, "temp", map[string]any{"merchantKey": "k", "salt": "s"})

	req := httptest.NewRequest("DELETE", "/v1/credentials/temp", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}

	req = httptest.NewRequest("DELETE", "/v1/credentials/temp", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}
}
