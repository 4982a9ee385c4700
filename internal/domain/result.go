package domain

// ============================================================
// Action results handed to the presentation layer
// ============================================================

// Default pagination used by list actions.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// PageRequest selects a page of a list endpoint. Zero values mean "let the
// CRM decide".
type PageRequest struct {
	Page     int
	PageSize int
}

// Defaulted fills unset fields with DefaultPage / DefaultPageSize.
func (p PageRequest) Defaulted() PageRequest {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// TotalPages returns ceil(total/pageSize), or 0 for a non-positive page size.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Page is the result of a paginated list action. Data is nil when the list
// could not be fetched; Kind says why.
type Page[T any] struct {
	Data       []T       `json:"data"`
	TotalCount int       `json:"total_count"`
	TotalPages int       `json:"total_pages"`
	Kind       ErrorKind `json:"error_kind,omitempty"`
}

// OK reports whether the page was fetched.
func (p Page[T]) OK() bool { return p.Kind == KindNone }

// EmptyPage is the page returned when a list could not be fetched.
func EmptyPage[T any](kind ErrorKind) Page[T] {
	return Page[T]{Kind: kind}
}

// Outcome is the result of a singular action. Value may be nil on success
// for operations without a payload (deletes).
type Outcome[T any] struct {
	Value *T        `json:"data"`
	Kind  ErrorKind `json:"error_kind,omitempty"`
}

// OK reports whether the action succeeded.
func (o Outcome[T]) OK() bool { return o.Kind == KindNone }

// Done wraps a successful value.
func Done[T any](v T) Outcome[T] {
	return Outcome[T]{Value: &v}
}

// Fail builds an unsuccessful outcome.
func Fail[T any](kind ErrorKind) Outcome[T] {
	return Outcome[T]{Kind: kind}
}

// Fields is a partial entity used as create/update body.
type Fields map[string]any
