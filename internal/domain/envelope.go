package domain

// ============================================================
// Envelope: normalized response of every CRM API call
// ============================================================

// ErrorKind classifies why an operation produced no usable result.
// The zero value means success.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindUnauthorized ErrorKind = "unauthorized"
	KindTransport    ErrorKind = "transport"
	KindRemote       ErrorKind = "remote"
	KindDecode       ErrorKind = "decode"
	KindCircuitOpen  ErrorKind = "circuit_open"
	KindNotFound     ErrorKind = "not_found"
	KindPrecondition ErrorKind = "precondition"
	KindValidation   ErrorKind = "validation"
)

// Pagination is the cursor metadata of a paginated CRM response.
type Pagination struct {
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
	Count int     `json:"count"`
}

// Envelope is the uniform result of a CRM call. Data is always a non-nil
// slice: singular resources come back as a one-element slice.
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Status     int         `json:"status"`
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`

	Kind ErrorKind `json:"-"`
}

// Failed builds an unsuccessful envelope with an empty payload.
func Failed[T any](status int, kind ErrorKind) Envelope[T] {
	return Envelope[T]{Success: false, Status: status, Data: []T{}, Kind: kind}
}

// First unwraps a singular resource.
func (e Envelope[T]) First() (T, bool) {
	if !e.Success || len(e.Data) == 0 {
		var zero T
		return zero, false
	}
	return e.Data[0], true
}

// Count returns the total item count reported by the CRM, falling back to
// the payload length for unpaginated responses.
func (e Envelope[T]) Count() int {
	if e.Pagination != nil {
		return e.Pagination.Count
	}
	return len(e.Data)
}
