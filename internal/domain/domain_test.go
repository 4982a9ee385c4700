package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{25, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 0},
		{25, 0, 0},
		{-3, 10, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TotalPages(tt.total, tt.size))
		})
	}
}

func TestPageRequest_Defaulted(t *testing.T) {
	assert.Equal(t, domain.PageRequest{Page: 1, PageSize: 10}, domain.PageRequest{}.Defaulted())
	assert.Equal(t, domain.PageRequest{Page: 3, PageSize: 50}, domain.PageRequest{Page: 3, PageSize: 50}.Defaulted())
}

func TestAddressForm_Problems(t *testing.T) {
	valid := domain.AddressForm{Address1: "Storgata 1", Postcode: "0155", City: "Oslo"}
	assert.Nil(t, valid.Problems())
	assert.NoError(t, valid.Validate())

	empty := domain.AddressForm{Postcode: " 12 "}
	problems := empty.Problems()
	assert.Len(t, problems, 3)
	assert.Contains(t, problems, "address1")
	assert.Contains(t, problems, "postcode")
	assert.Contains(t, problems, "city")

	err := empty.Validate()
	var ve *domain.ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "address1", ve.Field)
}

func TestAddressForm_PostcodeCountsRunes(t *testing.T) {
	f := domain.AddressForm{Address1: "Ærfuglveien 2", Postcode: "ØØØØ", City: "Bodø"}
	assert.Nil(t, f.Problems())
}

func TestAddressForm_FieldsRoundTrip(t *testing.T) {
	c := domain.Company{AddressStreet: "Storgata 1", AddressZip: "0155", AddressCity: "Oslo"}
	f := domain.AddressOf(c)

	assert.Equal(t, domain.Fields{
		"address_street": "Storgata 1",
		"address_zip":    "0155",
		"address_city":   "Oslo",
	}, f.Fields())
}

func TestEnvelope_First(t *testing.T) {
	env := domain.Envelope[int]{Success: true, Data: []int{4, 5}}
	v, ok := env.First()
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	_, ok = domain.Failed[int](500, domain.KindRemote).First()
	assert.False(t, ok)

	_, ok = domain.Envelope[int]{Success: true, Data: []int{}}.First()
	assert.False(t, ok)
}

func TestEnvelope_Count(t *testing.T) {
	paged := domain.Envelope[int]{Success: true, Data: []int{1, 2}, Pagination: &domain.Pagination{Count: 25}}
	assert.Equal(t, 25, paged.Count())

	plain := domain.Envelope[int]{Success: true, Data: []int{1, 2}}
	assert.Equal(t, 2, plain.Count())
}

func TestFailed_HasEmptyData(t *testing.T) {
	env := domain.Failed[string](404, domain.KindRemote)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
	assert.False(t, env.Success)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{"nil", nil, domain.KindNone},
		{"not found", &domain.ErrNotFound{Resource: "company", ID: "x"}, domain.KindNotFound},
		{"circuit", &domain.ErrCircuitOpen{Service: "crm"}, domain.KindCircuitOpen},
		{"validation", &domain.ErrValidation{Field: "name"}, domain.KindValidation},
		{"unauthorized", &domain.ErrUnauthorized{}, domain.KindUnauthorized},
		{"precondition", &domain.ErrPrecondition{Reason: "no workspace"}, domain.KindPrecondition},
		{"remote", &domain.ErrExternalService{Service: "crm", Status: 502}, domain.KindRemote},
		{"transport", &domain.ErrExternalService{Service: "crm", Err: errors.New("dial")}, domain.KindTransport},
		{"wrapped", fmt.Errorf("load: %w", &domain.ErrNotFound{}), domain.KindNotFound},
		{"unknown", errors.New("boom"), domain.KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KindOf(tt.err))
		})
	}
}

func TestWithoutCompany(t *testing.T) {
	assert.Equal(t, []int64{1, 3}, domain.WithoutCompany([]int64{1, 42, 3}, 42))
	assert.Equal(t, []int64{}, domain.WithoutCompany(nil, 42))
}

func TestOwnerIDsAndFullName(t *testing.T) {
	owners := []domain.AccountOwner{
		{ID: 7, FirstName: "Kari", LastName: "Nord"},
		{ID: 8, FirstName: "Per"},
		{ID: 9, LastName: "Sol"},
	}
	assert.Equal(t, []int64{7, 8, 9}, domain.OwnerIDs(owners))
	assert.Equal(t, "Kari Nord", owners[0].FullName())
	assert.Equal(t, "Per", owners[1].FullName())
	assert.Equal(t, "Sol", owners[2].FullName())
}

func TestUserWorkspaceID(t *testing.T) {
	var nilUser *domain.User
	assert.Empty(t, nilUser.WorkspaceID())
	assert.Empty(t, (&domain.User{}).WorkspaceID())
	assert.Equal(t, "ws-1", (&domain.User{Workspace: &domain.WorkspaceRef{UUID: "ws-1"}}).WorkspaceID())
}

func TestSessionValid(t *testing.T) {
	var nilSess *domain.Session
	assert.False(t, nilSess.Valid())
	assert.False(t, (&domain.Session{}).Valid())
	assert.True(t, (&domain.Session{UserID: "user_2abc"}).Valid())
}

func TestCompanyJSON_RelationsAreArrays(t *testing.T) {
	out, err := json.Marshal(domain.Done(domain.Company{ID: 42}))
	require.NoError(t, err)

	for _, key := range []string{`"account_owners":[]`, `"opportunities":[]`, `"people":[]`} {
		assert.Contains(t, string(out), key)
	}
}

func TestCompanyJSON_RoundTrip(t *testing.T) {
	in := domain.Company{ID: 42, Name: "Nordvik AS", AccountOwners: []domain.AccountOwner{{ID: 7}}}
	out, err := json.Marshal(in)
	require.NoError(t, err)

	var back domain.Company
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "Nordvik AS", back.Name)
	assert.Equal(t, []int64{7}, domain.OwnerIDs(back.AccountOwners))
	assert.Empty(t, back.Opportunities)
}
