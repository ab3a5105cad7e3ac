package nav

import (
	"context"
	"time"

	"budget/internal/config"
	"budget/internal/core"
	applog "budget/internal/log"
	"budget/internal/runner"
	"budget/internal/services"
)

// CommandRunner executes console commands that are not built in.
type CommandRunner interface {
	Run(ctx context.Context, command string) (runner.Result, error)
}

// ViewPolicy is the dashboard's presentation policy.
type ViewPolicy struct {
	// Fallback is config.FallbackNone or config.FallbackRecent.
	Fallback      string
	FallbackLimit int
	// ListLimit caps each monthly listing; 0 shows everything.
	ListLimit int
}

// PolicyFromConfig copies the dashboard settings out of cfg.
func PolicyFromConfig(cfg *config.Config) ViewPolicy {
	return ViewPolicy{
		Fallback:      cfg.EmptyMonthFallback,
		FallbackLimit: cfg.EmptyMonthFallbackLimit,
		ListLimit:     cfg.DashboardListLimit,
	}
}

// Session is the state shared by the controller and every screen: the
// ledger handle, the read-side engine and the month cursor.
type Session struct {
	Ledger   *services.LedgerService
	Engine   *services.Engine
	Exporter *services.Exporter
	Runner   CommandRunner
	Cursor   *MonthCursor
	Policy   ViewPolicy
	Now      func() time.Time
	Logger   *applog.Logger
}

// NewSession wires a session around ledger. Optional collaborators may be
// set on the returned value before it is handed to NewController.
func NewSession(ledger *services.LedgerService, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		Ledger: ledger,
		Engine: services.NewEngine(ledger.Store()),
		Cursor: NewMonthCursor(now),
		Policy: ViewPolicy{Fallback: config.FallbackNone, FallbackLimit: 10},
		Now:    now,
		Logger: applog.Discard(),
	}
}

// Today returns the current calendar date.
func (s *Session) Today() core.Date {
	return core.DateOf(s.Now())
}
