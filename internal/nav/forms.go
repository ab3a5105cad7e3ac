package nav

import (
	"context"
	"fmt"
	"strings"

	"budget/internal/core"
	applog "budget/internal/log"
)

// Message is the one-line feedback under a form.
type Message struct {
	Text string
	Err  bool
}

func okMsg(format string, args ...any) Message {
	return Message{Text: "✓ " + fmt.Sprintf(format, args...)}
}

func errMsg(format string, args ...any) Message {
	return Message{Text: "✗ " + fmt.Sprintf(format, args...), Err: true}
}

func inputErr(err error) Message {
	if core.IsValidation(err) {
		return errMsg("Invalid input: %v", err)
	}
	return errMsg("Error: %v", err)
}

// mutator is how forms write: through the controller, which refreshes
// every visible view after a successful change.
type mutator interface {
	add(ctx context.Context, kind core.Kind, n core.NewTransaction) (core.Transaction, error)
	update(ctx context.Context, kind core.Kind, id int64, p core.Patch) (core.Transaction, bool, error)
	remove(ctx context.Context, kind core.Kind, id int64) (bool, error)
}

// AddForm creates transactions. It stays open after a save so several
// entries can be made in a row.
type AddForm struct {
	Kind        core.Kind
	Date        string
	Description string
	Amount      string
	Category    string
	Message     Message
	// Suggestions are categories already used for Kind.
	Suggestions []string

	session *Session
	m       mutator
}

func newAddForm(ctx context.Context, s *Session, m mutator, kind core.Kind) *AddForm {
	f := &AddForm{Kind: kind, session: s, m: m}
	f.reset()
	f.loadSuggestions(ctx)
	return f
}

func (f *AddForm) reset() {
	f.Date = f.session.Today().String()
	f.Description = ""
	f.Amount = ""
	f.Category = f.Kind.DefaultCategory()
}

func (f *AddForm) loadSuggestions(ctx context.Context) {
	cats, err := f.session.Engine.DistinctCategories(ctx, f.Kind)
	if err != nil {
		f.session.Logger.WarnContext(ctx, "Category suggestions unavailable", applog.FieldError, err)
		if f.Message.Text == "" {
			f.Message = errMsg("Error loading categories: %v", err)
		}
		return
	}
	f.Suggestions = cats
}

// Submit validates the inputs and adds the transaction. It reports whether
// the ledger changed; on failure the inputs are kept and Message explains.
func (f *AddForm) Submit(ctx context.Context) bool {
	if strings.TrimSpace(f.Date) == "" || strings.TrimSpace(f.Description) == "" || strings.TrimSpace(f.Amount) == "" {
		f.Message = errMsg("All fields are required!")
		return false
	}
	date, err := core.ParseDate(f.Date)
	if err != nil {
		f.Message = inputErr(err)
		return false
	}
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		f.Message = inputErr(err)
		return false
	}

	tx, err := f.m.add(ctx, f.Kind, core.NewTransaction{
		Date:        date,
		Description: f.Description,
		Amount:      amount,
		Category:    f.Category,
	})
	if err != nil {
		f.Message = inputErr(err)
		return false
	}

	f.Message = okMsg("%s added successfully!", f.Kind.Title())
	f.session.Logger.DebugContext(ctx, "Form saved", applog.FieldKind, string(f.Kind), applog.FieldID, tx.ID)
	f.reset()
	f.loadSuggestions(ctx)
	return true
}

// selection is the shared "pick a row from a day" part of the edit and
// delete forms.
type selection struct {
	Kind       core.Kind
	LookupDate string
	Rows       []core.Transaction
	// Cursor indexes Rows; -1 means nothing is selected.
	Cursor int

	loaded  core.Date
	session *Session
}

func (s *selection) noun() string {
	return strings.ToLower(s.Kind.Title())
}

// Load lists the transactions on LookupDate.
func (s *selection) load(ctx context.Context) Message {
	date, err := core.ParseDate(s.LookupDate)
	if err != nil {
		return inputErr(err)
	}
	rows, err := s.session.Ledger.ListByDate(ctx, s.Kind, date)
	if err != nil {
		return errMsg("%v", err)
	}
	s.loaded = date
	s.Rows = rows
	s.Cursor = -1
	if len(rows) > 0 {
		s.Cursor = 0
	}
	if len(rows) == 0 {
		return Message{Text: fmt.Sprintf("No %ss found for that date.", s.noun())}
	}
	return Message{Text: fmt.Sprintf("Loaded %d %s(s).", len(rows), s.noun())}
}

// reload re-reads the loaded day after a change, keeping the cursor in range.
func (s *selection) reload(ctx context.Context) error {
	if s.loaded.IsZero() {
		return nil
	}
	rows, err := s.session.Ledger.ListByDate(ctx, s.Kind, s.loaded)
	if err != nil {
		return err
	}
	s.Rows = rows
	switch {
	case len(rows) == 0:
		s.Cursor = -1
	case s.Cursor >= len(rows):
		s.Cursor = len(rows) - 1
	case s.Cursor < 0:
		s.Cursor = 0
	}
	return nil
}

// MoveCursor moves the row selection by delta, clamped to the rows.
func (s *selection) MoveCursor(delta int) {
	if len(s.Rows) == 0 {
		s.Cursor = -1
		return
	}
	c := s.Cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= len(s.Rows) {
		c = len(s.Rows) - 1
	}
	s.Cursor = c
}

// Selected returns the row under the cursor.
func (s *selection) Selected() (core.Transaction, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Rows) {
		return core.Transaction{}, false
	}
	return s.Rows[s.Cursor], true
}

// EditForm changes the selected transaction. Blank inputs leave the field as is.
type EditForm struct {
	selection
	NewDate        string
	NewDescription string
	NewAmount      string
	NewCategory    string
	Message        Message

	m mutator
}

func newEditForm(s *Session, m mutator, kind core.Kind) *EditForm {
	return &EditForm{
		selection: selection{Kind: kind, LookupDate: s.Today().String(), Cursor: -1, session: s},
		m:         m,
	}
}

// Load fills Rows with the transactions on LookupDate.
func (f *EditForm) Load(ctx context.Context) {
	f.Message = f.load(ctx)
}

func (f *EditForm) patch() (core.Patch, error) {
	var p core.Patch
	if v := strings.TrimSpace(f.NewDate); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if v := strings.TrimSpace(f.NewDescription); v != "" {
		p.Description = &v
	}
	if v := strings.TrimSpace(f.NewAmount); v != "" {
		a, err := core.ParseAmount(v)
		if err != nil {
			return p, err
		}
		p.Amount = &a
	}
	if v := strings.TrimSpace(f.NewCategory); v != "" {
		p.Category = &v
	}
	return p, nil
}

// Save applies the non-blank inputs to the selected row.
func (f *EditForm) Save(ctx context.Context) bool {
	selected, ok := f.Selected()
	if !ok {
		f.Message = errMsg("No %s selected.", f.noun())
		return false
	}
	p, err := f.patch()
	if err != nil {
		f.Message = inputErr(err)
		return false
	}
	if p.IsEmpty() {
		f.Message = errMsg("Nothing to change.")
		return false
	}

	_, found, err := f.m.update(ctx, f.Kind, selected.ID, p)
	if err != nil {
		f.Message = inputErr(err)
		return false
	}
	if !found {
		f.Message = errMsg("%s not found.", f.Kind.Title())
		return false
	}
	f.NewDate, f.NewDescription, f.NewAmount, f.NewCategory = "", "", "", ""
	f.Message = okMsg("%s updated successfully.", f.Kind.Title())
	return true
}

// DeleteForm removes the selected transaction.
type DeleteForm struct {
	selection
	Message Message

	m mutator
}

func newDeleteForm(s *Session, m mutator, kind core.Kind) *DeleteForm {
	return &DeleteForm{
		selection: selection{Kind: kind, LookupDate: s.Today().String(), Cursor: -1, session: s},
		m:         m,
	}
}

// Load fills Rows with the transactions on LookupDate.
func (f *DeleteForm) Load(ctx context.Context) {
	f.Message = f.load(ctx)
}

// Delete removes the selected row.
func (f *DeleteForm) Delete(ctx context.Context) bool {
	selected, ok := f.Selected()
	if !ok {
		f.Message = errMsg("No %s selected.", f.noun())
		return false
	}
	removed, err := f.m.remove(ctx, f.Kind, selected.ID)
	if err != nil {
		f.Message = inputErr(err)
		return false
	}
	if !removed {
		f.Message = errMsg("%s not found.", f.Kind.Title())
		return false
	}
	f.Message = okMsg("%s deleted: %s %s", f.Kind.Title(), selected.Description, selected.Amount.Format())
	return true
}
