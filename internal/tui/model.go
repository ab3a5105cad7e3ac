// Package tui draws the navigation controller with bubbletea. Every key is
// translated into a controller call; all ledger logic lives in nav.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	applog "budget/internal/log"
	"budget/internal/nav"
)

const defaultWidth = 100

// commandDoneMsg carries the outcome of an external console command.
type commandDoneMsg struct {
	outcome nav.CommandOutcome
}

type Model struct {
	ctx    context.Context
	ctrl   *nav.Controller
	logger *applog.Logger

	// inputs mirror the text fields of the active form.
	inputs []textinput.Model
	focus  int
	// listFocus is set when the row list, not an input, has focus.
	listFocus bool
	bound     nav.Screen

	width  int
	height int
}

// New wraps a controller. ctx bounds every ledger and command call made
// from the UI.
func New(ctx context.Context, ctrl *nav.Controller) *Model {
	logger := ctrl.Session().Logger
	if logger == nil {
		logger = applog.Discard()
	}
	return &Model{
		ctx:    ctx,
		ctrl:   ctrl,
		logger: logger.WithComponent(applog.ComponentTUI),
		bound:  nav.Dashboard,
		width:  defaultWidth,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case commandDoneMsg:
		m.ctrl.CompleteCommand(m.ctx, msg.outcome)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.ctrl.Quit()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		if m.ctrl.Screen() == nav.Dashboard {
			cmd = m.updateDashboard(msg)
		} else {
			cmd = m.updateModal(msg)
		}
		if m.ctrl.Quitting() {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateDashboard(msg tea.KeyMsg) tea.Cmd {
	ctx := m.ctx
	switch msg.String() {
	case "e":
		return m.open(nav.AddExpense)
	case "i":
		return m.open(nav.AddIncome)
	case "E":
		return m.open(nav.EditExpense)
	case "I":
		return m.open(nav.EditIncome)
	case "d":
		return m.open(nav.DeleteExpense)
	case "D":
		return m.open(nav.DeleteIncome)
	case "c":
		return m.open(nav.CommandConsole)
	case "r":
		m.ctrl.Refresh(ctx)
	case "left", "h":
		m.ctrl.PrevMonth(ctx)
	case "right", "l":
		m.ctrl.NextMonth(ctx)
	case "t":
		m.ctrl.CurrentMonth(ctx)
	case "q", "esc":
		m.ctrl.Back()
	}
	return nil
}

func (m *Model) open(screen nav.Screen) tea.Cmd {
	if err := m.ctrl.Open(m.ctx, screen); err != nil {
		m.logger.WarnContext(m.ctx, "Screen not opened", applog.FieldScreen, screen.String(), applog.FieldError, err)
		return nil
	}
	return m.bind()
}

func (m *Model) updateModal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.ctrl.Back()
		m.unbind()
		return nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		return m.moveFocus(delta)
	case "up", "down":
		if m.hasRows() {
			delta := 1
			if msg.String() == "up" {
				delta = -1
			}
			m.moveRow(delta)
			return nil
		}
	case "enter":
		return m.submit()
	}

	if m.listFocus || len(m.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// Run blocks until the user quits.
func Run(ctx context.Context, ctrl *nav.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
