package notify

import "errors"

var (
	// Classification sentinels. Handlers return these to steer the outcome
	// of a dispatch; the dispatcher matches them with errors.Is.

	// ErrNotImplemented signals that the plugin provides no implementation
	// for the event. The dispatch is classified as a skip and produces no
	// history record, exactly as if the handler had not been registered.
	ErrNotImplemented = errors.New("notify: event not implemented")

	// ErrNotApplicable signals that the handler ran and decided, based on
	// the payload, that no external notification is warranted. The dispatch
	// is classified as a skip and IS recorded in history.
	ErrNotApplicable = errors.New("notify: notification not applicable")

	// Construction and validation errors.

	// ErrNoPlugin is returned by New when no plugin is supplied.
	ErrNoPlugin = errors.New("notify: no plugin configured")

	// ErrMissingIncidenceID marks a dispatch rejected before any handler or
	// collaborator ran because the incidence carries no correlation id.
	ErrMissingIncidenceID = errors.New("notify: missing incidence id")

	// ErrRecordNotFound is returned by history backends when a record id
	// does not exist.
	ErrRecordNotFound = errors.New("notify: history record not found")
)
