package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/thoreinstein/mcplat/internal/logging"
)

// Check is one diagnostic.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category groups related checks, e.g. "config" or "platform".
	Category() string

	// Run executes the check. It must not return nil.
	Run() *CheckResult
}

// Runner executes checks in registration order.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a runner over checks; more can be added with AddCheck.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks, now: time.Now}
}

// AddCheck registers a check to run after those already added.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and returns the report. A check that panics or
// returns nil is reported as an error; the remaining checks still run.
func (r *Runner) Run(ctx context.Context) *Report {
	logger := logging.FromContext(ctx)
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, c := range r.checks {
		start := r.now()
		result := runCheck(c)
		logger.Debug("doctor check",
			"check", c.Name(),
			"status", result.Status.String(),
			"elapsed", r.now().Sub(start))

		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}

	return report
}

func runCheck(c Check) (result *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			result = &CheckResult{
				Name:     c.Name(),
				Category: c.Category(),
				Status:   SeverityError,
				Message:  fmt.Sprintf("check panicked: %v", p),
			}
		}
	}()

	result = c.Run()
	if result == nil {
		result = &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "check returned no result",
		}
	}
	return result
}

// Report is the outcome of one Runner.Run.
type Report struct {
	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`

	// Results holds one entry per check, in run order.
	Results []*CheckResult `json:"results"`

	Summary Summary `json:"summary"`
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
