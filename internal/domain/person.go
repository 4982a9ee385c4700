package domain

// Person is a contact that can be linked to one or more companies.
type Person struct {
	ID        int64   `json:"id"`
	UUID      string  `json:"uuid"`
	Name      string  `json:"name"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Companies []int64 `json:"companies"`
}

// Key implements editor.Keyed.
func (p Person) Key() int64 { return p.ID }

// Opportunity is a sales pipeline entry linked to one or more companies.
type Opportunity struct {
	ID        int64   `json:"id"`
	UUID      string  `json:"uuid"`
	Name      string  `json:"name"`
	Stage     string  `json:"stage"`
	Value     float64 `json:"value,omitempty"`
	Companies []int64 `json:"companies"`
}

// Key implements editor.Keyed.
func (o Opportunity) Key() int64 { return o.ID }

// Pipeline stages used by the kanban board.
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

// WithoutCompany returns ids minus companyID. The input is not modified.
func WithoutCompany(ids []int64, companyID int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != companyID {
			out = append(out, id)
		}
	}
	return out
}
