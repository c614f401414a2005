package notify

// Status is the top-level classification of a dispatch attempt.
type Status string

const (
	// StatusOK means the handler ran and completed normally.
	StatusOK Status = "ok"
	// StatusSkipped means no external notification took place, either
	// because the plugin does not implement the event or because the
	// handler decided the input requires none.
	StatusSkipped Status = "skipped"
	// StatusFailed means the dispatch was rejected or the handler faulted.
	StatusFailed Status = "failed"
)

// SkipCause distinguishes the two skip sub-cases. Only not-applicable skips
// are recorded in history: a plugin with nothing to say produced nothing
// worth showing, while a deliberate data-dependent no-op is a decision worth
// auditing.
type SkipCause string

const (
	// SkipNone is the zero value for non-skipped outcomes.
	SkipNone SkipCause = ""
	// SkipNotImplemented means the plugin provides no handler for the event.
	SkipNotImplemented SkipCause = "not_implemented"
	// SkipNotApplicable means the handler ran and chose not to notify.
	SkipNotApplicable SkipCause = "not_applicable"
)

// FaultKind classifies a failed dispatch.
type FaultKind string

const (
	// FaultNone is the zero value for non-failed outcomes.
	FaultNone FaultKind = ""
	// FaultInvalidInput means the dispatcher rejected the call before any
	// handler ran (missing correlation id).
	FaultInvalidInput FaultKind = "invalid_input"
	// FaultExternalError means the handler attempted the external call and
	// it failed.
	FaultExternalError FaultKind = "external_error"
)

// Outcome is the classification of one dispatch attempt. Exactly one of the
// three statuses holds per call; an Outcome is produced fresh per dispatch
// and never cached.
type Outcome struct {
	Status Status    `json:"status"`
	Skip   SkipCause `json:"skip,omitempty"`
	Fault  FaultKind `json:"fault,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// OK returns the outcome of a handler that completed normally.
func OK() Outcome {
	return Outcome{Status: StatusOK}
}

// SkippedNotImplemented returns the outcome of a dispatch for which the
// plugin provides no handler.
func SkippedNotImplemented() Outcome {
	return Outcome{Status: StatusSkipped, Skip: SkipNotImplemented}
}

// SkippedNotApplicable returns the outcome of a handler that ran and
// decided this input requires no external notification.
func SkippedNotApplicable() Outcome {
	return Outcome{Status: StatusSkipped, Skip: SkipNotApplicable}
}

// Failed returns a failed outcome with the given fault kind and detail.
func Failed(kind FaultKind, detail string) Outcome {
	return Outcome{Status: StatusFailed, Fault: kind, Detail: detail}
}

// IsOK reports whether the handler completed normally.
func (o Outcome) IsOK() bool { return o.Status == StatusOK }

// IsSkipped reports whether no external notification took place.
func (o Outcome) IsSkipped() bool { return o.Status == StatusSkipped }

// IsFailed reports whether the dispatch was rejected or the handler faulted.
func (o Outcome) IsFailed() bool { return o.Status == StatusFailed }

// Recordable reports whether this outcome produces a history record.
// Not-implemented skips are never recorded (nothing happened, nothing to
// show) and invalid-input failures are rejected before the recorder to keep
// unattributable events out of history.
func (o Outcome) Recordable() bool {
	switch o.Status {
	case StatusOK:
		return true
	case StatusSkipped:
		return o.Skip == SkipNotApplicable
	case StatusFailed:
		return o.Fault != FaultInvalidInput
	default:
		return false
	}
}
