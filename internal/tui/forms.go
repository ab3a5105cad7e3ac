package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"budget/internal/nav"
)

type field struct {
	label       string
	placeholder string
	value       *string
}

// fields lists the text fields of the active form in focus order.
func (m *Model) fields() []field {
	switch m.ctrl.Screen() {
	case nav.AddExpense, nav.AddIncome:
		f := m.ctrl.AddForm()
		return []field{
			{"Date", "YYYY-MM-DD", &f.Date},
			{"Description", "What was it?", &f.Description},
			{"Amount", "0.00", &f.Amount},
			{"Category", f.Kind.DefaultCategory(), &f.Category},
		}
	case nav.EditExpense, nav.EditIncome:
		f := m.ctrl.EditForm()
		return []field{
			{"Lookup date", "YYYY-MM-DD", &f.LookupDate},
			{"New date", "unchanged", &f.NewDate},
			{"New description", "unchanged", &f.NewDescription},
			{"New amount", "unchanged", &f.NewAmount},
			{"New category", "unchanged", &f.NewCategory},
		}
	case nav.DeleteExpense, nav.DeleteIncome:
		f := m.ctrl.DeleteForm()
		return []field{{"Lookup date", "YYYY-MM-DD", &f.LookupDate}}
	case nav.CommandConsole:
		c := m.ctrl.Console()
		return []field{{"$", "help, stats, export or any shell command", &c.Input}}
	}
	return nil
}

// bind builds text inputs for the screen that was just opened.
func (m *Model) bind() tea.Cmd {
	fields := m.fields()
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.placeholder
		in.CharLimit = 256
		in.Width = 40
		in.Prompt = ""
		in.SetValue(*f.value)
		m.inputs[i] = in
	}
	m.bound = m.ctrl.Screen()
	m.focus = 0
	m.listFocus = false
	if m.bound == nav.AddExpense || m.bound == nav.AddIncome {
		m.focus = 1
	}
	return m.focusInput(m.focus)
}

func (m *Model) unbind() {
	m.inputs = nil
	m.focus = 0
	m.listFocus = false
	m.bound = m.ctrl.Screen()
}

func (m *Model) focusInput(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.listFocus = false
	if i < 0 || i >= len(m.inputs) {
		return nil
	}
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) focusList() {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.listFocus = true
}

// pull copies the inputs into the form before it acts.
func (m *Model) pull() {
	for i, f := range m.fields() {
		if i < len(m.inputs) {
			*f.value = m.inputs[i].Value()
		}
	}
}

// push copies the form back into the inputs after it acted.
func (m *Model) push() {
	for i, f := range m.fields() {
		if i < len(m.inputs) {
			m.inputs[i].SetValue(*f.value)
		}
	}
}

func (m *Model) hasRows() bool {
	switch m.ctrl.Screen() {
	case nav.EditExpense, nav.EditIncome:
		return len(m.ctrl.EditForm().Rows) > 0
	case nav.DeleteExpense, nav.DeleteIncome:
		return len(m.ctrl.DeleteForm().Rows) > 0
	}
	return false
}

func (m *Model) moveRow(delta int) {
	switch m.ctrl.Screen() {
	case nav.EditExpense, nav.EditIncome:
		m.ctrl.EditForm().MoveCursor(delta)
	case nav.DeleteExpense, nav.DeleteIncome:
		m.ctrl.DeleteForm().MoveCursor(delta)
	}
}

// moveFocus cycles through the inputs, plus the row list on edit and
// delete screens once rows are loaded.
func (m *Model) moveFocus(delta int) tea.Cmd {
	slots := len(m.inputs)
	if m.hasRows() {
		slots++
	}
	if slots == 0 {
		return nil
	}
	cur := m.focus
	if m.listFocus {
		cur = len(m.inputs)
	}
	next := (cur + delta + slots) % slots
	if next == len(m.inputs) {
		m.focusList()
		return nil
	}
	return m.focusInput(next)
}

func (m *Model) submit() tea.Cmd {
	ctx := m.ctx
	m.pull()
	defer m.push()

	switch m.ctrl.Screen() {
	case nav.AddExpense, nav.AddIncome:
		if m.ctrl.AddForm().Submit(ctx) {
			return m.focusInput(1)
		}
	case nav.EditExpense, nav.EditIncome:
		f := m.ctrl.EditForm()
		if m.focus == 0 && !m.listFocus {
			f.Load(ctx)
			if len(f.Rows) > 0 {
				return m.focusInput(1)
			}
			return nil
		}
		f.Save(ctx)
	case nav.DeleteExpense, nav.DeleteIncome:
		f := m.ctrl.DeleteForm()
		if !m.listFocus {
			f.Load(ctx)
			if len(f.Rows) > 0 {
				m.focusList()
			}
			return nil
		}
		f.Delete(ctx)
		if len(f.Rows) == 0 {
			return m.focusInput(0)
		}
	case nav.CommandConsole:
		if pending := m.ctrl.Console().Submit(ctx); pending != nil {
			return func() tea.Msg {
				return commandDoneMsg{outcome: pending.Run(ctx)}
			}
		}
	}
	return nil
}
