package tui

import (
	"strings"

	"github.com/boddenberg/citadel-bfa-go/internal/card"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/editor"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderCard() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.card.Company().Name))
	s.WriteString("\n")

	var section string
	for i, r := range m.rows() {
		if h := sectionOf(r.kind); h != section {
			section = h
			if h != "" {
				s.WriteString("\n" + sectionStyle.Render(h) + "\n")
			}
		}

		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}

		switch {
		case m.mode == ModeEdit && i == m.cursor:
			s.WriteString(prefix + labelStyle.Render(r.label))
			for j, in := range m.inputs {
				if j > 0 {
					s.WriteString("\n" + strings.Repeat(" ", 14))
				}
				s.WriteString(in.View())
			}
		case r.kind == rowField || r.kind == rowAddress:
			value := r.value
			if value == "" {
				value = mutedStyle.Render("-")
			}
			line := prefix + labelStyle.Render(r.label) + value
			if i == m.cursor {
				line = selectedStyle.Render(prefix) + labelStyle.Render(r.label) + value
			}
			s.WriteString(line)
		default:
			value := r.value
			if m.removing(r) {
				value += mutedStyle.Render(" (fjerner...)")
			}
			if r.kind == rowCandidate {
				value = mutedStyle.Render("+ ") + value
			}
			if i == m.cursor {
				s.WriteString(selectedStyle.Render(prefix + value))
			} else {
				s.WriteString(prefix + value)
			}
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderStatus())
	s.WriteString(m.renderHelp())
	return s.String()
}

func sectionOf(k rowKind) string {
	switch k {
	case rowOwner, rowCandidate:
		return "Kundeansvarlige"
	case rowOpportunity:
		return "Muligheter"
	case rowPerson:
		return "Personer"
	}
	return ""
}

func (m Model) removing(r row) bool {
	switch r.kind {
	case rowOwner:
		return m.card.Owners.Removing(r.id)
	case rowOpportunity:
		return m.card.Opportunities.Removing(r.id)
	case rowPerson:
		return m.card.People.Removing(r.id)
	}
	return false
}

func (m Model) renderStatus() string {
	if m.busy {
		return mutedStyle.Render("Lagrer...")
	}
	t, ok := m.toast.Last()
	if !ok {
		return ""
	}
	text := t.Title
	if t.Message != "" {
		text += ": " + t.Message
	}
	if t.Level == editor.LevelError {
		return errorStyle.Render(text)
	}
	return successStyle.Render(text)
}

func (m Model) renderHelp() string {
	var help []string
	if m.mode == ModeEdit {
		help = []string{"Enter: Lagre", "Esc: Avbryt"}
		if m.editKey == card.FieldAddress {
			help = append(help, "Tab: Neste felt")
		}
	} else {
		help = []string{"↑/↓: Velg", "Enter: Rediger/legg til", "d: Fjern", "q: Avslutt"}
	}
	return "\n" + helpStyle.Render(strings.Join(help, " • "))
}

func formatAddress(f domain.AddressForm) string {
	var parts []string
	for _, p := range []string{f.Address1, strings.TrimSpace(f.Postcode + " " + f.City)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ============================================================
// Key handling
// ============================================================

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clamp(m.cursor-1, len(rows))
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, len(rows))
		return m, nil
	}
	if len(rows) == 0 {
		return m, nil
	}
	r := rows[clamp(m.cursor, len(rows))]

	switch msg.String() {
	case "enter":
		switch r.kind {
		case rowField:
			return m.beginText(r.key)
		case rowAddress:
			return m.beginAddress()
		case rowCandidate:
			return m.run(m.addOwner(r.id))
		}
	case "d":
		switch r.kind {
		case rowOwner:
			return m.run(func() error { return m.card.RemoveOwner(m.ctx, r.id) })
		case rowOpportunity:
			return m.run(func() error { return m.card.RemoveOpportunity(m.ctx, r.id) })
		case rowPerson:
			return m.run(func() error { return m.card.RemovePerson(m.ctx, r.id) })
		}
	}
	return m, nil
}

func (m Model) addOwner(userID int64) func() error {
	return func() error {
		for _, u := range m.card.Candidates {
			if u.ID == userID {
				return m.card.AddOwner(m.ctx, ownerOf(u))
			}
		}
		return nil
	}
}

// run marks the model busy and performs fn as a command.
func (m Model) run(fn func() error) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, func() tea.Msg {
		return actionDoneMsg{err: fn()}
	}
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.SetValue(value)
	return in
}

func (m Model) beginText(key string) (tea.Model, tea.Cmd) {
	f, ok := m.card.Field(key)
	if !ok || !f.Begin() {
		return m, nil
	}
	m.mode = ModeEdit
	m.editKey = key
	m.inputs = []textinput.Model{newInput(card.Label(key), f.Buffer())}
	m.focusIndex = 0
	m.updateFocus()
	return m, textinput.Blink
}

func (m Model) beginAddress() (tea.Model, tea.Cmd) {
	f := m.card.Address()
	if !f.Begin() {
		return m, nil
	}
	form := f.Buffer()
	m.mode = ModeEdit
	m.editKey = card.FieldAddress
	m.inputs = []textinput.Model{
		newInput("Adresse 1", form.Address1),
		newInput("Postnummer", form.Postcode),
		newInput("By", form.City),
	}
	m.focusIndex = 0
	m.updateFocus()
	return m, textinput.Blink
}

func (m *Model) updateFocus() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.editKey == card.FieldAddress {
			m.card.Address().Cancel()
		} else if f, ok := m.card.Field(m.editKey); ok {
			f.Cancel()
		}
		m.mode = ModeBrowse
		m.inputs = nil
		m.editKey = ""
		return m, nil
	case "tab":
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		m.updateFocus()
		return m, nil
	case "shift+tab":
		m.focusIndex = (m.focusIndex + len(m.inputs) - 1) % len(m.inputs)
		m.updateFocus()
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.editKey == card.FieldAddress {
		f := m.card.Address()
		form := f.Buffer()
		form.Address1 = m.inputs[0].Value()
		form.Postcode = m.inputs[1].Value()
		form.City = m.inputs[2].Value()
		f.Set(form)
		return m.run(func() error { return m.card.SaveAddress(m.ctx) })
	}

	f, ok := m.card.Field(m.editKey)
	if !ok {
		return m, nil
	}
	f.Set(m.inputs[0].Value())
	key := m.editKey
	return m.run(func() error { return m.card.Save(m.ctx, key) })
}
