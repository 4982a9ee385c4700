package service_test

import (
	"context"
	"testing"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newCompanyService(companies *mockCompanies, workspaces *mockWorkspaces, ws string) *service.CompanyService {
	dir := newDirectory(&mockUsers{user: userWithWorkspace(ws)})
	if workspaces == nil {
		workspaces = &mockWorkspaces{users: ok[domain.User]()}
	}
	return service.NewCompanyService(companies, workspaces, dir, observability.NewMetrics(), zap.NewNop())
}

func TestCompanyList_TotalPages(t *testing.T) {
	companies := &mockCompanies{list: paged(25, domain.Company{ID: 1}, domain.Company{ID: 2})}
	svc := newCompanyService(companies, nil, "ws-1")

	page := svc.List(context.Background(), sess, domain.PageRequest{Page: 1, PageSize: 10})

	if !page.OK() {
		t.Fatalf("unexpected kind %q", page.Kind)
	}
	if page.TotalCount != 25 || page.TotalPages != 3 {
		t.Errorf("got count=%d pages=%d, want 25/3", page.TotalCount, page.TotalPages)
	}
	if companies.listedWS != "ws-1" {
		t.Errorf("expected workspace ws-1, got %q", companies.listedWS)
	}
}

func TestCompanyList_Defaults(t *testing.T) {
	companies := &mockCompanies{list: paged[domain.Company](0)}
	svc := newCompanyService(companies, nil, "ws-1")

	svc.List(context.Background(), sess, domain.PageRequest{})

	want := domain.PageRequest{Page: 1, PageSize: 10}
	if diff := cmp.Diff(want, companies.listedPage); diff != "" {
		t.Errorf("page request mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanyList_NoWorkspace(t *testing.T) {
	companies := &mockCompanies{list: paged(25, domain.Company{ID: 1})}
	svc := newCompanyService(companies, nil, "")

	page := svc.List(context.Background(), sess, domain.PageRequest{})

	if page.Kind != domain.KindPrecondition {
		t.Errorf("expected precondition, got %q", page.Kind)
	}
	if page.Data != nil || page.TotalCount != 0 || page.TotalPages != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
	if companies.listedWS != "" {
		t.Error("expected no CRM list call")
	}
}

func TestCompanyList_RemoteFailure(t *testing.T) {
	companies := &mockCompanies{list: domain.Failed[domain.Company](500, domain.KindTransport)}
	svc := newCompanyService(companies, nil, "ws-1")

	page := svc.List(context.Background(), sess, domain.PageRequest{})
	if page.Kind != domain.KindTransport || page.Data != nil {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestCompanyDetails_NotFound(t *testing.T) {
	companies := &mockCompanies{details: domain.Failed[domain.Company](404, domain.KindRemote)}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.Details(context.Background(), sess, "c1")
	if res.Kind != domain.KindNotFound || res.Value != nil {
		t.Errorf("unexpected outcome %+v", res)
	}
}

func TestCompanyPage_FetchesBoth(t *testing.T) {
	companies := &mockCompanies{details: ok(domain.Company{ID: 9, UUID: "c9", Name: "Acme"})}
	workspaces := &mockWorkspaces{users: paged(2, domain.User{ID: 1}, domain.User{ID: 2})}
	svc := newCompanyService(companies, workspaces, "ws-1")

	res := svc.Page(context.Background(), sess, "c9")
	if !res.OK() {
		t.Fatalf("unexpected kind %q", res.Kind)
	}
	if res.Value.Company.Name != "Acme" || len(res.Value.WorkspaceUsers) != 2 {
		t.Errorf("unexpected page %+v", res.Value)
	}
}

func TestCompanyPage_UsersUnavailable(t *testing.T) {
	companies := &mockCompanies{details: ok(domain.Company{ID: 9})}
	workspaces := &mockWorkspaces{users: domain.Failed[domain.User](502, domain.KindRemote)}
	svc := newCompanyService(companies, workspaces, "ws-1")

	res := svc.Page(context.Background(), sess, "c9")
	if !res.OK() {
		t.Fatalf("unexpected kind %q", res.Kind)
	}
	if res.Value.WorkspaceUsers == nil || len(res.Value.WorkspaceUsers) != 0 {
		t.Errorf("expected empty user list, got %#v", res.Value.WorkspaceUsers)
	}
}

func TestCompanyCreate_AddsWorkspace(t *testing.T) {
	companies := &mockCompanies{update: ok(domain.Company{ID: 3, Name: "New"})}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.Create(context.Background(), sess, domain.Fields{"name": "New"})
	if !res.OK() {
		t.Fatalf("unexpected kind %q", res.Kind)
	}
	if companies.createdWith["workspace"] != "ws-1" {
		t.Errorf("expected workspace in body, got %v", companies.createdWith)
	}
}

func TestCompanyCreate_RequiresName(t *testing.T) {
	companies := &mockCompanies{}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.Create(context.Background(), sess, domain.Fields{"orgnr": "123"})
	if res.Kind != domain.KindValidation {
		t.Errorf("expected validation, got %q", res.Kind)
	}
	if companies.createdWith != nil {
		t.Error("expected no CRM call")
	}
}

func TestUpdateAddress_InvalidNeverSent(t *testing.T) {
	companies := &mockCompanies{update: ok(domain.Company{ID: 3})}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.UpdateAddress(context.Background(), sess, "c3", domain.AddressForm{Address1: "Storgata 1", Postcode: "12", City: "Oslo"})
	if res.Kind != domain.KindValidation {
		t.Errorf("expected validation, got %q", res.Kind)
	}
	if len(companies.updates) != 0 {
		t.Errorf("expected no update, got %d", len(companies.updates))
	}
}

func TestUpdateAddress_Valid(t *testing.T) {
	companies := &mockCompanies{update: ok(domain.Company{ID: 3, AddressCity: "Oslo"})}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.UpdateAddress(context.Background(), sess, "c3", domain.AddressForm{Address1: "Storgata 1", Postcode: "0155", City: "Oslo"})
	if !res.OK() {
		t.Fatalf("unexpected kind %q", res.Kind)
	}
	want := domain.Fields{"address_street": "Storgata 1", "address_zip": "0155", "address_city": "Oslo"}
	if diff := cmp.Diff(want, companies.updates[0].fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAccountOwner_AlreadyPresent(t *testing.T) {
	company := domain.Company{ID: 3, UUID: "c3", AccountOwners: []domain.AccountOwner{{ID: 7}}}
	companies := &mockCompanies{details: ok(company)}
	svc := newCompanyService(companies, nil, "ws-1")

	res := svc.AddAccountOwner(context.Background(), sess, "c3", 7)
	if !res.OK() || len(res.Value.AccountOwners) != 1 {
		t.Errorf("unexpected outcome %+v", res)
	}
	if len(companies.updates) != 0 {
		t.Error("expected no update for a present owner")
	}
}

func TestAddAndRemoveAccountOwner(t *testing.T) {
	company := domain.Company{ID: 3, UUID: "c3", AccountOwners: []domain.AccountOwner{{ID: 7}, {ID: 8}}}
	companies := &mockCompanies{details: ok(company), update: ok(company)}
	svc := newCompanyService(companies, nil, "ws-1")

	svc.AddAccountOwner(context.Background(), sess, "c3", 9)
	svc.RemoveAccountOwner(context.Background(), sess, "c3", 7)

	if len(companies.updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(companies.updates))
	}
	if diff := cmp.Diff([]int64{7, 8, 9}, companies.updates[0].fields["account_owners"]); diff != "" {
		t.Errorf("add mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{8}, companies.updates[1].fields["account_owners"]); diff != "" {
		t.Errorf("remove mismatch (-want +got):\n%s", diff)
	}
}
