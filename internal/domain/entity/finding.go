package entity

// Severity classifies a preflight finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is one preflight result: a constraint that AWS would enforce at
// provisioning time, caught locally before any API call is made. The
// checks encode the rejections hit during the first deployments (log group
// prefix, wildcard ARNs, lifecycle minimums, naming rules).
type Finding struct {
	Severity Severity `json:"severity"`
	Resource string   `json:"resource"`
	Message  string   `json:"message"`
}

// Findings agrega o resultado do preflight.
type Findings []Finding

// HasErrors reports whether any finding is an error.
func (f Findings) HasErrors() bool {
	for _, finding := range f {
		if finding.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity findings.
func (f Findings) Errors() Findings {
	var out Findings
	for _, finding := range f {
		if finding.Severity == SeverityError {
			out = append(out, finding)
		}
	}
	return out
}

// Warnings returns only the warning-severity findings.
func (f Findings) Warnings() Findings {
	var out Findings
	for _, finding := range f {
		if finding.Severity == SeverityWarning {
			out = append(out, finding)
		}
	}
	return out
}
