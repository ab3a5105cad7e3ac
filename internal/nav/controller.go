package nav

import (
	"context"
	"fmt"

	"budget/internal/core"
	applog "budget/internal/log"
)

// Controller owns the screen stack, the active form and the dashboard view.
// All methods run on the UI event loop; nothing here is safe for concurrent use.
type Controller struct {
	session *Session
	stack   *Stack
	logger  *applog.Logger

	addForm    *AddForm
	editForm   *EditForm
	deleteForm *DeleteForm
	console    *Console
	// consoleSeq numbers opened consoles so late command outcomes find
	// the console that started them.
	consoleSeq int

	view       DashboardView
	generation int
	status     Message
	quit       bool
}

// NewController builds the controller and computes the first view.
func NewController(ctx context.Context, s *Session) (*Controller, error) {
	if s.Logger == nil {
		s.Logger = applog.Discard()
	}
	c := &Controller{
		session: s,
		stack:   NewStack(),
		logger:  s.Logger.WithComponent(applog.ComponentNav),
	}
	if err := c.rebuild(ctx); err != nil {
		return nil, fmt.Errorf("initial refresh: %w", err)
	}
	return c, nil
}

func (c *Controller) Session() *Session { return c.session }

// Screen is the visible screen.
func (c *Controller) Screen() Screen { return c.stack.Top() }

func (c *Controller) Stack() []Screen { return c.stack.Screens() }

func (c *Controller) View() DashboardView { return c.view }

// Status is the dashboard's one-line status.
func (c *Controller) Status() Message { return c.status }

// Quitting reports whether the dashboard was closed.
func (c *Controller) Quitting() bool { return c.quit }

func (c *Controller) AddForm() *AddForm       { return c.addForm }
func (c *Controller) EditForm() *EditForm     { return c.editForm }
func (c *Controller) DeleteForm() *DeleteForm { return c.deleteForm }
func (c *Controller) Console() *Console       { return c.console }

// Open pushes screen over the dashboard with a fresh form.
func (c *Controller) Open(ctx context.Context, screen Screen) error {
	if err := c.stack.Push(screen); err != nil {
		return err
	}
	kind, _ := screen.Kind()
	switch screen {
	case AddExpense, AddIncome:
		c.addForm = newAddForm(ctx, c.session, c, kind)
	case EditExpense, EditIncome:
		c.editForm = newEditForm(c.session, c, kind)
	case DeleteExpense, DeleteIncome:
		c.deleteForm = newDeleteForm(c.session, c, kind)
	case CommandConsole:
		c.consoleSeq++
		c.console = newConsole(c.session, c.consoleSeq)
	}
	c.logger.DebugContext(ctx, "Screen opened", applog.FieldScreen, screen.String())
	return nil
}

// Back closes the top screen and drops its unsaved input. Closing the
// dashboard quits.
func (c *Controller) Back() {
	popped, ok := c.stack.Pop()
	if !ok {
		c.quit = true
		return
	}
	switch popped {
	case Dashboard:
		c.quit = true
	case AddExpense, AddIncome:
		c.addForm = nil
	case EditExpense, EditIncome:
		c.editForm = nil
	case DeleteExpense, DeleteIncome:
		c.deleteForm = nil
	case CommandConsole:
		c.console = nil
	}
}

// CompleteCommand delivers an external command's outcome to the console
// that started it. If that console was closed in the meantime the result
// goes to the dashboard status instead.
func (c *Controller) CompleteCommand(ctx context.Context, out CommandOutcome) {
	if c.console != nil && c.console.id == out.console {
		c.console.Complete(out)
		return
	}
	c.logger.DebugContext(ctx, "Command finished after its console closed", applog.FieldCommand, out.Command)
	if out.Err != nil {
		c.status = errMsg("Command %s: %s", out.Command, capitalize(out.Err.Error()))
		return
	}
	c.status = okMsg("Command finished: %s", out.Command)
}

// Quit empties the stack.
func (c *Controller) Quit() {
	for !c.stack.Empty() {
		c.Back()
	}
	c.quit = true
}

func (c *Controller) PrevMonth(ctx context.Context) {
	c.session.Cursor.Prev()
	c.refreshQuietly(ctx)
}

func (c *Controller) NextMonth(ctx context.Context) {
	c.session.Cursor.Next()
	c.refreshQuietly(ctx)
}

// CurrentMonth jumps back to the real current month.
func (c *Controller) CurrentMonth(ctx context.Context) {
	c.session.Cursor.Today()
	if c.refreshQuietly(ctx) {
		c.status = Message{Text: "Showing current month"}
	}
}

// Refresh is the explicit refresh key.
func (c *Controller) Refresh(ctx context.Context) {
	if c.refreshQuietly(ctx) {
		c.status = Message{Text: "Data refreshed!"}
	}
}

func (c *Controller) refreshQuietly(ctx context.Context) bool {
	if err := c.rebuild(ctx); err != nil {
		c.logger.ErrorContext(ctx, "Refresh failed", applog.FieldOperation, applog.OpRefresh, applog.FieldError, err)
		c.status = errMsg("Error refreshing data: %v", err)
		return false
	}
	c.status = Message{}
	return true
}

// rebuild recomputes the dashboard and any loaded edit/delete rows. It
// never writes.
func (c *Controller) rebuild(ctx context.Context) error {
	c.generation++
	view, err := buildView(ctx, c.session, c.generation)
	if err != nil {
		return err
	}
	c.view = view
	if c.editForm != nil {
		if err := c.editForm.reload(ctx); err != nil {
			return err
		}
	}
	if c.deleteForm != nil {
		if err := c.deleteForm.reload(ctx); err != nil {
			return err
		}
	}
	return nil
}

// afterMutation refreshes before control returns to the event loop. The
// write already happened, so a failed refresh only shows on the status line.
func (c *Controller) afterMutation(ctx context.Context) {
	c.refreshQuietly(ctx)
}

func (c *Controller) add(ctx context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error) {
	tx, err := c.session.Ledger.Add(ctx, kind, n)
	if err != nil {
		return core.Transaction{}, err
	}
	c.afterMutation(ctx)
	return tx, nil
}

func (c *Controller) update(ctx context.Context, kind core.Kind, id int64, p core.Patch) (core.Transaction, bool, error) {
	tx, found, err := c.session.Ledger.Update(ctx, kind, id, p)
	if err != nil || !found {
		return tx, found, err
	}
	c.afterMutation(ctx)
	return tx, true, nil
}

func (c *Controller) remove(ctx context.Context, kind core.Kind, id int64) (bool, error) {
	removed, err := c.session.Ledger.Delete(ctx, kind, id)
	if err != nil || !removed {
		return removed, err
	}
	c.afterMutation(ctx)
	return true, nil
}
