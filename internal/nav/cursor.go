package nav

import (
	"time"

	"budget/internal/core"
)

// MonthCursor is the dashboard's selected month. It moves independently of
// the screen stack.
type MonthCursor struct {
	month core.Month
	now   func() time.Time
}

// NewMonthCursor starts at the month containing now().
func NewMonthCursor(now func() time.Time) *MonthCursor {
	if now == nil {
		now = time.Now
	}
	return &MonthCursor{month: core.MonthOf(now()), now: now}
}

func (c *MonthCursor) Month() core.Month {
	return c.month
}

// Set moves the cursor to m.
func (c *MonthCursor) Set(m core.Month) {
	c.month = core.NewMonth(m.Year, m.Month)
}

func (c *MonthCursor) Next() core.Month {
	c.month = c.month.Next()
	return c.month
}

func (c *MonthCursor) Prev() core.Month {
	c.month = c.month.Prev()
	return c.month
}

// Today resets the cursor to the real current month.
func (c *MonthCursor) Today() core.Month {
	c.month = core.MonthOf(c.now())
	return c.month
}
