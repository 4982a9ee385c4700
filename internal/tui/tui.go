// Package tui is the terminal front end of the company card: a cursor over
// the editable fields and related items, with every mutation run as a
// bubbletea command against the CRM.
package tui

import (
	"context"

	"github.com/boddenberg/citadel-bfa-go/internal/card"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/editor"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEdit
)

type rowKind int

const (
	rowField rowKind = iota
	rowAddress
	rowOwner
	rowCandidate
	rowOpportunity
	rowPerson
)

type row struct {
	kind  rowKind
	key   string
	id    int64
	label string
	value string
}

// actionDoneMsg is sent when a card mutation returns.
type actionDoneMsg struct {
	err error
}

// Model is the bubbletea model of one company card.
type Model struct {
	ctx   context.Context
	card  *card.CompanyCard
	toast *editor.Recorder

	mode   Mode
	cursor int
	busy   bool

	// editKey is the field being edited; inputs holds one input per form
	// part (one for text fields, three for the address).
	editKey    string
	inputs     []textinput.Model
	focusIndex int

	width  int
	height int
}

// NewModel creates a model over c. toasts must be the Notifier the card
// reports to; its last toast is shown in the status line.
func NewModel(ctx context.Context, c *card.CompanyCard, toasts *editor.Recorder) Model {
	return Model{
		ctx:    ctx,
		card:   c,
		toast:  toasts,
		mode:   ModeBrowse,
		width:  80,
		height: 24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case actionDoneMsg:
		return m.handleActionDone()
	}
	return m, nil
}

func (m Model) View() string {
	return m.renderCard()
}

// Mode reports whether the model is browsing or editing.
func (m Model) Mode() Mode { return m.mode }

// Busy reports whether a mutation is in flight.
func (m Model) Busy() bool { return m.busy }

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch m.mode {
	case ModeEdit:
		return m.handleEditKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

func (m Model) handleActionDone() (tea.Model, tea.Cmd) {
	m.busy = false
	if m.mode == ModeEdit && m.editState() != editor.Editing {
		m.mode = ModeBrowse
		m.inputs = nil
		m.editKey = ""
	}
	m.cursor = clamp(m.cursor, len(m.rows()))
	return m, nil
}

// editState is the state of the field under edit.
func (m Model) editState() editor.State {
	if m.editKey == card.FieldAddress {
		return m.card.Address().State()
	}
	if f, ok := m.card.Field(m.editKey); ok {
		return f.State()
	}
	return editor.Viewing
}

// rows lists the navigable lines of the card in display order.
func (m Model) rows() []row {
	var rows []row
	for _, key := range card.TextFields {
		f, _ := m.card.Field(key)
		rows = append(rows, row{kind: rowField, key: key, label: card.Label(key), value: f.Shown()})
	}
	addr := m.card.Address().Shown()
	rows = append(rows, row{kind: rowAddress, key: card.FieldAddress, label: card.Label(card.FieldAddress), value: formatAddress(addr)})

	for _, o := range m.card.Owners.Items() {
		rows = append(rows, row{kind: rowOwner, id: o.ID, value: o.FullName()})
	}
	for _, u := range m.card.Candidates {
		if m.card.Owners.Contains(u.ID) {
			continue
		}
		rows = append(rows, row{kind: rowCandidate, id: u.ID, value: ownerOf(u).FullName()})
	}
	for _, o := range m.card.Opportunities.Items() {
		rows = append(rows, row{kind: rowOpportunity, id: o.ID, value: o.Name})
	}
	for _, p := range m.card.People.Items() {
		rows = append(rows, row{kind: rowPerson, id: p.ID, value: p.Name})
	}
	return rows
}

func ownerOf(u domain.User) domain.AccountOwner {
	return domain.AccountOwner{ID: u.ID, ClerkID: u.ClerkID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func clamp(i, n int) int {
	switch {
	case n == 0 || i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(12)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
