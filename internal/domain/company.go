package domain

import (
	"encoding/json"
	"time"
)

// ============================================================
// Companies
// ============================================================

// Company is a customer company as returned by the CRM details endpoint.
// URLs address it by UUID; association lists on other entities refer to ID.
type Company struct {
	ID            int64          `json:"id"`
	UUID          string         `json:"uuid"`
	Name          string         `json:"name"`
	OrgNr         string         `json:"orgnr"`
	AddressStreet string         `json:"address_street"`
	AddressZip    string         `json:"address_zip"`
	AddressCity   string         `json:"address_city"`
	ARR           float64        `json:"arr"`
	NumEmployees  int            `json:"num_employees"`
	URL           string         `json:"url"`
	LinkedIn      string         `json:"some_linked"`
	Twitter       string         `json:"some_twitter"`
	DateCreated   time.Time      `json:"date_created"`
	LastContacted *time.Time     `json:"last_contacted,omitempty"`
	AccountOwners []AccountOwner `json:"account_owners"`
	Opportunities []Opportunity  `json:"opportunities"`
	People        []Person       `json:"people"`
}

// MarshalJSON writes the relation lists as arrays, never null.
func (c Company) MarshalJSON() ([]byte, error) {
	type plain Company
	p := plain(c)
	if p.AccountOwners == nil {
		p.AccountOwners = []AccountOwner{}
	}
	if p.Opportunities == nil {
		p.Opportunities = []Opportunity{}
	}
	if p.People == nil {
		p.People = []Person{}
	}
	return json.Marshal(p)
}

// AccountOwner is a workspace user responsible for a company.
type AccountOwner struct {
	ID        int64  `json:"id"`
	ClerkID   string `json:"clerk_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Key implements editor.Keyed.
func (o AccountOwner) Key() int64 { return o.ID }

// FullName joins the owner's name parts.
func (o AccountOwner) FullName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}

// OwnerIDs returns the numeric ids of the given owners, in order.
func OwnerIDs(owners []AccountOwner) []int64 {
	ids := make([]int64, 0, len(owners))
	for _, o := range owners {
		ids = append(ids, o.ID)
	}
	return ids
}

// CompanyPage is the payload of the company detail page: the company itself
// plus the workspace users offered as account owner candidates.
type CompanyPage struct {
	Company        *Company `json:"company"`
	WorkspaceUsers []User   `json:"workspace_users"`
}
