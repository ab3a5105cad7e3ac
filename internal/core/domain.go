package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

const (
	DefaultExpenseCategory = "Other"
	DefaultIncomeCategory  = "Salary"

	MaxDescriptionLen = 200
	DateLayout        = "2006-01-02"
)

type (
	// Kind discriminates the two independent transaction collections.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          int64
		Kind        Kind
		Date        Date
		Description string
		Amount      Money
		Category    string
	}

	// NewTransaction carries the fields supplied when a transaction is created.
	// An empty Category is replaced by the kind default.
	NewTransaction struct {
		Date        Date
		Description string
		Amount      Money
		Category    string
	}

	// Patch lists the fields an update changes. Nil fields keep their value.
	Patch struct {
		Date        *Date
		Description *string
		Amount      *Money
		Category    *string
	}
)

var (
	ErrInvalidKind        = errors.New("invalid transaction kind")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = fmt.Errorf("description too long (max %d characters)", MaxDescriptionLen)
	ErrEmptyCategory      = errors.New("empty category")
)

// ValidationError reports a rejected field. It wraps one of the sentinel errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	default:
		return invalid("kind", ErrInvalidKind)
	}
}

// DefaultCategory returns the category assigned when none is given.
func (k Kind) DefaultCategory() string {
	if k == Income {
		return DefaultIncomeCategory
	}
	return DefaultExpenseCategory
}

func (k Kind) String() string {
	return string(k)
}

// Title returns the capitalised kind name used in labels.
func (k Kind) Title() string {
	switch k {
	case Expense:
		return "Expense"
	case Income:
		return "Income"
	default:
		return string(k)
	}
}

// Kinds returns both kinds in display order.
func Kinds() []Kind {
	return []Kind{Expense, Income}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. Overflowing days such as 2024-02-30
// are rejected rather than normalised.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, invalid("date", ErrInvalidDate)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, invalid("date", fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s))
	}
	return DateOf(t), nil
}

// Validate accepts only calendar days: UTC midnight in years 1 to 9999.
func (d Date) Validate() error {
	if d.IsZero() {
		return invalid("date", ErrInvalidDate)
	}
	if y := d.Year(); y < 1 || y > 9999 {
		return invalid("date", fmt.Errorf("%w: year %d out of range", ErrInvalidDate, y))
	}
	if d.Location() != time.UTC || !d.Equal(DateOf(d.Time).Time) {
		return invalid("date", fmt.Errorf("%w: %s is not a calendar day", ErrInvalidDate, d.Time.Format(time.RFC3339)))
	}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return invalid("amount", ErrInvalidAmount)
	}
	return nil
}

func validateDescription(s string) error {
	if len(strings.TrimSpace(s)) == 0 {
		return invalid("description", ErrEmptyDescription)
	}
	if len([]rune(s)) > MaxDescriptionLen {
		return invalid("description", ErrDescriptionTooLong)
	}
	return nil
}

func validateCategory(s string) error {
	if strings.TrimSpace(s) == "" {
		return invalid("category", ErrEmptyCategory)
	}
	return nil
}

// Normalize trims text fields and applies the kind's default category.
func (n NewTransaction) Normalize(kind Kind) NewTransaction {
	n.Description = strings.TrimSpace(n.Description)
	n.Category = strings.TrimSpace(n.Category)
	if n.Category == "" {
		n.Category = kind.DefaultCategory()
	}
	return n
}

func (n NewTransaction) Validate() error {
	if err := n.Date.Validate(); err != nil {
		return err
	}
	if err := validateDescription(n.Description); err != nil {
		return err
	}
	if err := n.Amount.Validate(); err != nil {
		return err
	}
	return validateCategory(n.Category)
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.Description == nil && p.Amount == nil && p.Category == nil
}

// Normalize trims the supplied text fields.
func (p Patch) Normalize() Patch {
	if p.Description != nil {
		s := strings.TrimSpace(*p.Description)
		p.Description = &s
	}
	if p.Category != nil {
		s := strings.TrimSpace(*p.Category)
		p.Category = &s
	}
	return p
}

// Validate checks only the fields that are supplied.
func (p Patch) Validate() error {
	if p.Date != nil {
		if err := p.Date.Validate(); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Amount != nil {
		if err := p.Amount.Validate(); err != nil {
			return err
		}
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns t with the patch fields copied over. ID and Kind never change.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	return t
}

// Less orders transactions most recent first, newest id first on ties.
func Less(a, b Transaction) bool {
	if !a.Date.Equal(b.Date.Time) {
		return a.Date.After(b.Date.Time)
	}
	return a.ID > b.ID
}
