package pipeline

// Requirement is one entry of the input batch: a package name plus an
// optional exact version pin. Immutable once submitted.
type Requirement struct {
	Name    string
	Version string
}

// String renders the requirement the way it appeared in the input file:
// "name" or "name==version".
func (r Requirement) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "==" + r.Version
}

// OutcomeKind classifies the terminal result of one requirement.
type OutcomeKind int

const (
	// Installed means the requirement completed every stage.
	Installed OutcomeKind = iota
	// Missing means the package or the pinned version is absent from the index.
	Missing
	// NoCompatibleWheel means candidates exist but none match the environment.
	NoCompatibleWheel
	// TransportFailure means the selected wheel could not be downloaded.
	TransportFailure
	// InstallFailure means the installer rejected or failed on the wheel.
	InstallFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Installed:
		return "installed"
	case Missing:
		return "missing"
	case NoCompatibleWheel:
		return "no compatible wheel"
	case TransportFailure:
		return "transport failure"
	case InstallFailure:
		return "install failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal, never-retried result of processing one
// requirement.
type Outcome struct {
	Requirement Requirement
	Kind        OutcomeKind
	Detail      string
}

// Failed reports whether the requirement ended in anything but Installed.
func (o Outcome) Failed() bool {
	return o.Kind != Installed
}

// Report is the aggregated result of a batch run. Outcomes are ordered by
// submission order regardless of completion order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that did not end Installed, in submission
// order.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// FailedLines renders each failed requirement as its input-file form, one
// per entry. This list is the externally consumed output of a batch run.
func (r *Report) FailedLines() []string {
	var lines []string
	for _, o := range r.Outcomes {
		if o.Failed() {
			lines = append(lines, o.Requirement.String())
		}
	}
	return lines
}
