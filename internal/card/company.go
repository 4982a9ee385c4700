// Package card is the view-model of the company detail card: inline
// editable fields and related lists, each mutation confirmed by the CRM
// and reported through a toast.
package card

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/editor"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"

	"go.uber.org/zap"
)

// mutationOwners labels owner list changes in the mutation counter.
const mutationOwners = "account_owners"

// Editable field keys. They double as CRM body keys.
const (
	FieldName      = "name"
	FieldOrgNr     = "orgnr"
	FieldAddress   = "address"
	FieldARR       = "arr"
	FieldEmployees = "num_employees"
	FieldURL       = "url"
	FieldLinkedIn  = "some_linked"
	FieldTwitter   = "some_twitter"
)

// TextFields lists the single-value fields in display order.
var TextFields = []string{FieldName, FieldOrgNr, FieldARR, FieldURL, FieldEmployees, FieldLinkedIn, FieldTwitter}

// Companies is the company actions the card needs.
type Companies interface {
	Update(ctx context.Context, sess *domain.Session, companyID string, fields domain.Fields) domain.Outcome[domain.Company]
	UpdateAddress(ctx context.Context, sess *domain.Session, companyID string, form domain.AddressForm) domain.Outcome[domain.Company]
	SetAccountOwners(ctx context.Context, sess *domain.Session, companyID string, ownerIDs []int64) domain.Outcome[domain.Company]
}

// Opportunities detaches opportunities from a company.
type Opportunities interface {
	DetachFromCompany(ctx context.Context, sess *domain.Session, opp domain.Opportunity, companyID int64) domain.Outcome[domain.Opportunity]
}

// People detaches people from a company.
type People interface {
	DetachFromCompany(ctx context.Context, sess *domain.Session, person domain.Person, companyID int64) domain.Outcome[domain.Person]
}

// Deps are the collaborators of a CompanyCard.
type Deps struct {
	Companies     Companies
	Opportunities Opportunities
	People        People
	Notifier      editor.Notifier
	Logger        *zap.Logger
	// Metrics counts mutation outcomes; may be nil.
	Metrics *observability.Metrics
}

// kindError carries an action's error kind through editor commits.
type kindError struct {
	kind domain.ErrorKind
}

func (e *kindError) Error() string { return "action failed: " + string(e.kind) }

// KindOfError returns the error kind behind a card mutation error.
func KindOfError(err error) domain.ErrorKind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return domain.KindOf(err)
}

type textField struct {
	*editor.Field[string]
	get   func(domain.Company) string
	parse func(string) (any, error)
}

// CompanyCard holds the state of one company detail card.
type CompanyCard struct {
	sess      *domain.Session
	companyID string
	numericID int64
	deps      Deps

	base          domain.Company
	fields        map[string]*textField
	address       *editor.Field[domain.AddressForm]
	Owners        *editor.RelationList[domain.AccountOwner]
	Opportunities *editor.RelationList[domain.Opportunity]
	People        *editor.RelationList[domain.Person]
	Candidates    []domain.User
}

// NewCompanyCard builds a card from the loaded company page.
func NewCompanyCard(sess *domain.Session, page domain.CompanyPage, deps Deps) *CompanyCard {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	c := *page.Company

	card := &CompanyCard{
		sess:          sess,
		companyID:     c.UUID,
		numericID:     c.ID,
		deps:          deps,
		base:          c,
		fields:        map[string]*textField{},
		address:       editor.NewField(FieldAddress, domain.AddressOf(c)),
		Owners:        editor.NewRelationList(c.AccountOwners),
		Opportunities: editor.NewRelationList(c.Opportunities),
		People:        editor.NewRelationList(c.People),
		Candidates:    page.WorkspaceUsers,
	}

	add := func(key string, get func(domain.Company) string, parse func(string) (any, error)) {
		card.fields[key] = &textField{Field: editor.NewField(key, get(c)), get: get, parse: parse}
	}
	add(FieldName, func(c domain.Company) string { return c.Name }, asText)
	add(FieldOrgNr, func(c domain.Company) string { return c.OrgNr }, asText)
	add(FieldARR, func(c domain.Company) string { return formatFloat(c.ARR) }, asFloat)
	add(FieldEmployees, func(c domain.Company) string { return strconv.Itoa(c.NumEmployees) }, asInt)
	add(FieldURL, func(c domain.Company) string { return c.URL }, asText)
	add(FieldLinkedIn, func(c domain.Company) string { return c.LinkedIn }, asText)
	add(FieldTwitter, func(c domain.Company) string { return c.Twitter }, asText)

	return card
}

func asText(s string) (any, error) { return strings.TrimSpace(s), nil }

func asFloat(s string) (any, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func asInt(s string) (any, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Company returns the static part of the card: id, uuid, dates.
func (c *CompanyCard) Company() domain.Company { return c.base }

// Field returns a text field by key.
func (c *CompanyCard) Field(key string) (*editor.Field[string], bool) {
	f, ok := c.fields[key]
	if !ok {
		return nil, false
	}
	return f.Field, true
}

// Address returns the address form field.
func (c *CompanyCard) Address() *editor.Field[domain.AddressForm] { return c.address }

// Save submits the edited value of a text field. Unparsable numbers fail
// locally and leave the field in Editing.
func (c *CompanyCard) Save(ctx context.Context, key string) error {
	f, ok := c.fields[key]
	if !ok {
		return &domain.ErrValidation{Field: key, Message: "unknown field"}
	}
	txt := texts[key]

	value, err := f.parse(f.Buffer())
	if err != nil {
		c.deps.Notifier.Error(txt.failed, msgInvalidNumber)
		return &domain.ErrValidation{Field: key, Message: msgInvalidNumber}
	}

	err = f.Submit(ctx, func(ctx context.Context, _ string) (string, error) {
		res := c.deps.Companies.Update(ctx, c.sess, c.companyID, domain.Fields{key: value})
		if !res.OK() || res.Value == nil {
			return "", &kindError{kind: orRemote(res.Kind)}
		}
		return f.get(*res.Value), nil
	})
	c.report(key, err)
	return err
}

// SaveAddress validates the address form and submits it only when valid.
// An invalid form stays in Editing and never reaches the network.
func (c *CompanyCard) SaveAddress(ctx context.Context) error {
	form := c.address.Buffer()
	if err := form.Validate(); err != nil {
		var ve *domain.ErrValidation
		if errors.As(err, &ve) {
			c.deps.Notifier.Error(texts[FieldAddress].failed, ve.Message)
		}
		return err
	}

	err := c.address.Submit(ctx, func(ctx context.Context, form domain.AddressForm) (domain.AddressForm, error) {
		res := c.deps.Companies.UpdateAddress(ctx, c.sess, c.companyID, form)
		if !res.OK() || res.Value == nil {
			return form, &kindError{kind: orRemote(res.Kind)}
		}
		saved := domain.AddressOf(*res.Value)
		saved.Address2 = form.Address2
		return saved, nil
	})
	c.report(FieldAddress, err)
	return err
}

func (c *CompanyCard) report(key string, err error) {
	txt := texts[key]
	switch kind := KindOfError(err); {
	case err == nil:
		c.count(key, err)
		c.deps.Notifier.Success(txt.updated, "")
	case errors.Is(err, editor.ErrNotEditing), errors.Is(err, editor.ErrBusy):
		return
	case kind == domain.KindTransport || kind == domain.KindCircuitOpen:
		c.deps.Notifier.Error(txt.errored, "")
	default:
		c.deps.Notifier.Error(txt.failed, "")
	}
	if err != nil {
		c.count(key, err)
		c.deps.Logger.Warn("card update failed",
			zap.String("company_id", c.companyID),
			zap.String("field", key),
			zap.Error(err),
		)
	}
}

// count records a committed mutation of what.
func (c *CompanyCard) count(what string, err error) {
	if c.deps.Metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	c.deps.Metrics.IncrMutation(what, outcome)
}

func orRemote(kind domain.ErrorKind) domain.ErrorKind {
	if kind == domain.KindNone {
		return domain.KindRemote
	}
	return kind
}

// OwnerAdded records an owner assigned elsewhere. Duplicates are ignored.
func (c *CompanyCard) OwnerAdded(owner domain.AccountOwner) bool {
	return c.Owners.Add(owner)
}

// AddOwner assigns a workspace user as account owner. An owner already on
// the card is a no-op.
func (c *CompanyCard) AddOwner(ctx context.Context, owner domain.AccountOwner) error {
	added, err := c.Owners.Attach(ctx, owner, func(ctx context.Context, o domain.AccountOwner) error {
		ids := append(domain.OwnerIDs(c.Owners.Items()), o.ID)
		return c.setOwners(ctx, ids)
	})
	switch {
	case errors.Is(err, editor.ErrBusy):
	case err != nil:
		c.count(mutationOwners, err)
		c.deps.Notifier.Error(msgOwnerAddFailed, "")
	case added:
		c.count(mutationOwners, nil)
		c.deps.Notifier.Success(msgOwnerAdded, owner.FullName())
	}
	return err
}

// RemoveOwner unassigns an account owner.
func (c *CompanyCard) RemoveOwner(ctx context.Context, ownerID int64) error {
	err := c.Owners.Remove(ctx, ownerID, func(ctx context.Context, _ domain.AccountOwner) error {
		var ids []int64
		for _, id := range domain.OwnerIDs(c.Owners.Items()) {
			if id != ownerID {
				ids = append(ids, id)
			}
		}
		return c.setOwners(ctx, ids)
	})
	if !errors.Is(err, editor.ErrBusy) && !errors.Is(err, editor.ErrNotInList) {
		c.count(mutationOwners, err)
	}
	switch kind := KindOfError(err); {
	case err == nil:
		c.deps.Notifier.Success(msgOwnerRemoved, "")
	case errors.Is(err, editor.ErrBusy):
	case kind == domain.KindTransport || kind == domain.KindCircuitOpen || errors.Is(err, editor.ErrNotInList):
		c.deps.Notifier.Error(msgOwnerRemoveError, "")
	default:
		c.deps.Notifier.Error(msgOwnerRemoveFailed, "")
	}
	return err
}

func (c *CompanyCard) setOwners(ctx context.Context, ids []int64) error {
	res := c.deps.Companies.SetAccountOwners(ctx, c.sess, c.companyID, ids)
	if !res.OK() {
		return &kindError{kind: res.Kind}
	}
	return nil
}

// RemoveOpportunity detaches an opportunity from this company. The item
// stays on the card until the CRM confirms.
func (c *CompanyCard) RemoveOpportunity(ctx context.Context, opportunityID int64) error {
	var name string
	err := c.Opportunities.Remove(ctx, opportunityID, func(ctx context.Context, opp domain.Opportunity) error {
		name = opp.Name
		res := c.deps.Opportunities.DetachFromCompany(ctx, c.sess, opp, c.numericID)
		if !res.OK() {
			return &kindError{kind: res.Kind}
		}
		return nil
	})
	c.reportRemoval(err, msgOpportunityRemoved(name), msgOpportunityRemoveError, "opportunity", opportunityID)
	return err
}

// RemovePerson detaches a person from this company.
func (c *CompanyCard) RemovePerson(ctx context.Context, personID int64) error {
	var name string
	err := c.People.Remove(ctx, personID, func(ctx context.Context, p domain.Person) error {
		name = p.Name
		res := c.deps.People.DetachFromCompany(ctx, c.sess, p, c.numericID)
		if !res.OK() {
			return &kindError{kind: res.Kind}
		}
		return nil
	})
	c.reportRemoval(err, msgPersonRemoved(name), msgPersonRemoveError, "person", personID)
	return err
}

func (c *CompanyCard) reportRemoval(err error, success, failure, what string, id int64) {
	switch {
	case err == nil:
		c.count(what, nil)
		c.deps.Notifier.Success(success, "")
	case errors.Is(err, editor.ErrBusy):
	default:
		if !errors.Is(err, editor.ErrNotInList) {
			c.count(what, err)
		}
		c.deps.Notifier.Error(failure, "")
		c.deps.Logger.Warn("card removal failed",
			zap.String("company_id", c.companyID),
			zap.String("item", what),
			zap.Int64("item_id", id),
			zap.Error(err),
		)
	}
}
