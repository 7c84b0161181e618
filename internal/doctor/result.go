package doctor

// Severity ranks a check result. Higher is worse.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo

	// SeverityWarning means mcplat works but probably not as intended.
	SeverityWarning

	// SeverityError means a command relying on this will fail.
	SeverityError
)

var severityNames = [...]string{
	SeverityPass:    "pass",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details holds check-specific context such as the list of problems.
	Details map[string]any `json:"details,omitempty"`

	// FixHint suggests how to resolve a warning or error.
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	switch sev {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}
