package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/card"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/editor"
	"github.com/boddenberg/citadel-bfa-go/internal/handler"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/cache"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/crmapi"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

const (
	userID      = "user_2abc"
	workspaceID = "9a3c0a3e-6c1e-4a53-9b64-3b1f0f7d2c11"
	companyUUID = "6f1c9e0a-7d55-4f0a-a3c4-6b0f3c1d2e42"
	oppUUID     = "0b7f2d7e-1e6a-4c0e-8d0e-2f8a4a8e6b01"
)

// crmState is a small stateful CRM: one company, one opportunity and two
// workspace users. PATCHes are applied so later reads observe them.
type crmState struct {
	mu          sync.Mutex
	company     map[string]any
	opportunity map[string]any
	patches     []string
	badHeaders  int
}

func newCRMState() *crmState {
	return &crmState{
		company: map[string]any{
			"id": 42, "uuid": companyUUID, "name": "Nordvik AS", "arr": 1000.0, "num_employees": 12,
			"address_street": "Storgata 1", "address_zip": "0155", "address_city": "Oslo",
			"account_owners": []any{map[string]any{"id": 7, "clerk_id": userID, "first_name": "Kari", "last_name": "Nord"}},
			"opportunities":  []any{map[string]any{"id": 3, "uuid": oppUUID, "name": "Fornyelse", "stage": "lead", "companies": []any{42}}},
			"people":         []any{},
		},
		opportunity: map[string]any{"id": 3, "uuid": oppUUID, "name": "Fornyelse", "stage": "lead", "companies": []any{42}},
	}
}

var users = map[int]map[string]any{
	7: {"id": 7, "clerk_id": userID, "first_name": "Kari", "last_name": "Nord"},
	8: {"id": 8, "clerk_id": "user_2def", "first_name": "Per", "last_name": "Sol"},
}

func (s *crmState) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, map[string]any{"id": 7, "clerk_id": r.PathValue("id"), "company_details": map[string]any{"uuid": workspaceID, "name": "Nordvik"}})
	})
	mux.HandleFunc("GET /workspaces/{ws}/users/", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, map[string]any{"results": []any{users[7], users[8]}, "count": 2})
	})
	mux.HandleFunc("GET /companies/{id}/details", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if r.PathValue("id") != companyUUID {
			http.NotFound(w, r)
			return
		}
		writeBody(w, s.company)
	})
	mux.HandleFunc("PATCH /companies/{id}/", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		json.NewDecoder(r.Body).Decode(&fields)
		s.mu.Lock()
		defer s.mu.Unlock()
		for k, v := range fields {
			s.patches = append(s.patches, "company."+k)
			if k == "account_owners" {
				var owners []any
				for _, id := range v.([]any) {
					owners = append(owners, users[int(id.(float64))])
				}
				v = owners
			}
			s.company[k] = v
		}
		writeBody(w, s.company)
	})
	mux.HandleFunc("GET /opportunities/{id}/details", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeBody(w, s.opportunity)
	})
	mux.HandleFunc("PATCH /opportunities/{id}/", func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		json.NewDecoder(r.Body).Decode(&fields)
		s.mu.Lock()
		defer s.mu.Unlock()
		for k, v := range fields {
			s.patches = append(s.patches, "opportunity."+k)
			s.opportunity[k] = v
		}
		if comps, ok := fields["companies"].([]any); ok && len(comps) == 0 {
			s.company["opportunities"] = []any{}
		}
		writeBody(w, s.opportunity)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(crmapi.HeaderLock) != "lock" || r.Header.Get(crmapi.HeaderKey) != "key" || r.Header.Get(crmapi.HeaderID) != userID {
			s.mu.Lock()
			s.badHeaders++
			s.mu.Unlock()
		}
		mux.ServeHTTP(w, r)
	})
}

func writeBody(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func setup(t *testing.T) (*crmState, handler.Services, http.Handler, string) {
	t.Helper()
	state := newCRMState()
	crm := httptest.NewServer(state.handler())
	t.Cleanup(crm.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("crm-integration", crmapi.BreakerIsSuccessful, nil)
	api := crmapi.NewClient(&http.Client{Timeout: 5 * time.Second}, crmapi.Options{
		BaseURL: crm.URL,
		Lock:    "lock",
		Key:     "key",
		Resilience: resilience.Config{
			MaxRetries:     1,
			InitialBackoff: 10 * time.Millisecond,
			MaxConcurrency: 10,
		},
	}, cb, metrics, logger)

	userCache := cache.New[domain.User](time.Minute)
	t.Cleanup(func() { userCache.Close() })

	svc := handler.NewServices(api, userCache, metrics, logger)
	verifier := handler.NewSessionVerifier("integration-secret", "")
	token, err := verifier.Sign(domain.Session{UserID: userID}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return state, svc, handler.NewRouter(svc, verifier, api, metrics, logger), token
}

func call(t *testing.T, router http.Handler, token, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: invalid JSON %q", method, path, rec.Body.String())
	}
	return rec.Code, out
}

// TestIntegration_CompanyPageFlow drives the company page over HTTP: load,
// edit a field, add an owner, detach an opportunity, then reload.
func TestIntegration_CompanyPageFlow(t *testing.T) {
	state, _, router, token := setup(t)

	// --- Load page ---
	code, body := call(t, router, token, http.MethodGet, "/v1/companies/"+companyUUID+"/page", nil)
	if code != http.StatusOK {
		t.Fatalf("page: expected 200, got %d (%v)", code, body)
	}
	page := body["data"].(map[string]any)
	if got := len(page["workspace_users"].([]any)); got != 2 {
		t.Errorf("expected 2 candidates, got %d", got)
	}

	// --- Edit ARR ---
	code, body = call(t, router, token, http.MethodPatch, "/v1/companies/"+companyUUID, map[string]any{"arr": 2500.5})
	if code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d (%v)", code, body)
	}
	if arr := body["data"].(map[string]any)["arr"]; arr != 2500.5 {
		t.Errorf("expected arr 2500.5, got %v", arr)
	}

	// --- Add owner ---
	code, body = call(t, router, token, http.MethodPost, "/v1/companies/"+companyUUID+"/owners", map[string]any{"owner_id": 8})
	if code != http.StatusOK {
		t.Fatalf("add owner: expected 200, got %d (%v)", code, body)
	}
	if got := len(body["data"].(map[string]any)["account_owners"].([]any)); got != 2 {
		t.Errorf("expected 2 owners, got %d", got)
	}

	// --- Detach opportunity ---
	code, body = call(t, router, token, http.MethodPost, "/v1/opportunities/"+oppUUID+"/detach", map[string]any{"company_id": 42})
	if code != http.StatusOK {
		t.Fatalf("detach: expected 200, got %d (%v)", code, body)
	}

	// --- Reload ---
	_, body = call(t, router, token, http.MethodGet, "/v1/companies/"+companyUUID, nil)
	company := body["data"].(map[string]any)
	if len(company["opportunities"].([]any)) != 0 {
		t.Errorf("opportunity still attached: %v", company["opportunities"])
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	if state.badHeaders != 0 {
		t.Errorf("%d CRM requests without the expected headers", state.badHeaders)
	}
	want := "company.arr,company.account_owners,opportunity.companies"
	if got := strings.Join(state.patches, ","); got != want {
		t.Errorf("patches = %s, want %s", got, want)
	}
}

func TestIntegration_UnknownCompany(t *testing.T) {
	_, _, router, token := setup(t)

	code, body := call(t, router, token, http.MethodGet, "/v1/companies/00000000-0000-4000-8000-000000000000/page", nil)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if body["error_kind"] != string(domain.KindNotFound) {
		t.Errorf("expected not_found, got %v", body["error_kind"])
	}
}

// TestIntegration_CardAgainstServices edits the company through the card
// model backed by the real services and client.
func TestIntegration_CardAgainstServices(t *testing.T) {
	state, svc, _, _ := setup(t)
	ctx := context.Background()
	sess := &domain.Session{UserID: userID}

	res := svc.Companies.Page(ctx, sess, companyUUID)
	if res.Kind != domain.KindNone || res.Value == nil {
		t.Fatalf("page failed: %s", res.Kind)
	}

	toasts := editor.NewRecorder(nil)
	c := card.NewCompanyCard(sess, *res.Value, card.Deps{
		Companies:     svc.Companies,
		Opportunities: svc.Opportunities,
		People:        svc.People,
		Notifier:      toasts,
	})

	name, _ := c.Field(card.FieldName)
	name.Begin()
	name.Set("Nordvik Holding AS")
	if err := c.Save(ctx, card.FieldName); err != nil {
		t.Fatalf("save name: %v", err)
	}
	if name.Value() != "Nordvik Holding AS" {
		t.Errorf("name not confirmed: %q", name.Value())
	}

	if err := c.RemoveOpportunity(ctx, 3); err != nil {
		t.Fatalf("remove opportunity: %v", err)
	}
	if c.Opportunities.Len() != 0 {
		t.Errorf("opportunity still listed")
	}

	if len(toasts.All()) != 2 {
		t.Errorf("expected 2 toasts, got %+v", toasts.All())
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.company["name"] != "Nordvik Holding AS" {
		t.Errorf("CRM name = %v", state.company["name"])
	}
}
