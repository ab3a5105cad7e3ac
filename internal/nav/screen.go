// Package nav is the navigation controller: a stack of screens over the
// dashboard, the month cursor, and the modal forms that write to the ledger.
// It knows nothing about how screens are drawn.
package nav

import (
	"errors"
	"fmt"

	"budget/internal/core"
)

type Screen int

const (
	Dashboard Screen = iota
	AddExpense
	AddIncome
	EditExpense
	EditIncome
	DeleteExpense
	DeleteIncome
	CommandConsole
)

var (
	ErrNotFromDashboard = errors.New("modal screens open only from the dashboard")
	ErrInvalidScreen    = errors.New("invalid screen")
)

var screenNames = map[Screen]string{
	Dashboard:      "Dashboard",
	AddExpense:     "Add Expense",
	AddIncome:      "Add Income",
	EditExpense:    "Edit Expense",
	EditIncome:     "Edit Income",
	DeleteExpense:  "Delete Expense",
	DeleteIncome:   "Delete Income",
	CommandConsole: "Command Terminal",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

// Kind returns the transaction kind a form screen works on.
func (s Screen) Kind() (core.Kind, bool) {
	switch s {
	case AddExpense, EditExpense, DeleteExpense:
		return core.Expense, true
	case AddIncome, EditIncome, DeleteIncome:
		return core.Income, true
	default:
		return "", false
	}
}

// IsModal reports whether s is pushed over the dashboard.
func (s Screen) IsModal() bool {
	return s > Dashboard && s <= CommandConsole
}

// Stack holds the open screens, dashboard at the bottom.
type Stack struct {
	screens []Screen
}

func NewStack() *Stack {
	return &Stack{screens: []Screen{Dashboard}}
}

// Push opens a modal screen. Only the dashboard can open one.
func (s *Stack) Push(screen Screen) error {
	if !screen.IsModal() {
		return fmt.Errorf("%w: %s", ErrInvalidScreen, screen)
	}
	if s.Top() != Dashboard || len(s.screens) == 0 {
		return ErrNotFromDashboard
	}
	s.screens = append(s.screens, screen)
	return nil
}

// Pop closes the top screen. Popping the dashboard empties the stack, which
// means the application should exit.
func (s *Stack) Pop() (Screen, bool) {
	if len(s.screens) == 0 {
		return 0, false
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	return top, true
}

// Top returns the visible screen. An empty stack reports Dashboard.
func (s *Stack) Top() Screen {
	if len(s.screens) == 0 {
		return Dashboard
	}
	return s.screens[len(s.screens)-1]
}

func (s *Stack) Len() int {
	return len(s.screens)
}

func (s *Stack) Empty() bool {
	return len(s.screens) == 0
}

// Screens returns a copy of the stack, bottom first.
func (s *Stack) Screens() []Screen {
	return append([]Screen(nil), s.screens...)
}
