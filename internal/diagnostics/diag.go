package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Diagnostic is a structured record pushed to connected diag clients:
// capture lifecycle, encoder fallbacks, render anomalies.
type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

func Infof(code, summary string) Diagnostic {
	return Diagnostic{Severity: Info, Code: code, Summary: summary}
}

func Warnf(code, summary, detail string) Diagnostic {
	return Diagnostic{Severity: Warn, Code: code, Summary: summary, Detail: detail}
}

func Errf(code, summary string, err error) Diagnostic {
	d := Diagnostic{Severity: Err, Code: code, Summary: summary}
	if err != nil {
		d.Detail = err.Error()
	}
	return d
}
