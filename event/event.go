// Package event defines the closed set of incidence lifecycle events an
// external-system plugin may react to, together with the per-event payload
// shapes. The enumeration is extensible only by adding new kinds, never by
// removing one.
package event

// Kind names one lifecycle event of an incidence.
type Kind string

// All supported lifecycle event kinds.
const (
	// KindFirstAssignment means the incidence was assigned for the first time.
	KindFirstAssignment Kind = "first_assignment"
	// KindActive means the incidence entered the active state.
	KindActive Kind = "active"
	// KindDelayed means work on the incidence was delayed.
	KindDelayed Kind = "delayed"
	// KindRestored means the affected service was restored.
	KindRestored Kind = "restored"
	// KindSolved means the incidence was solved.
	KindSolved Kind = "solved"
	// KindActiveAfterSolved means a solved incidence became active again.
	KindActiveAfterSolved Kind = "active_after_solved"
	// KindAddedNote means a free-text annotation was attached.
	KindAddedNote Kind = "added_note"
	// KindAddedAttachment means a file attachment was added.
	KindAddedAttachment Kind = "added_attachment"
)

// Kinds returns every supported event kind.
func Kinds() []Kind {
	return []Kind{
		KindFirstAssignment,
		KindActive,
		KindDelayed,
		KindRestored,
		KindSolved,
		KindActiveAfterSolved,
		KindAddedNote,
		KindAddedAttachment,
	}
}

// Event is a lifecycle event carrying its kind-specific payload. The
// dispatcher treats the payload as opaque: it forwards the value verbatim to
// the plugin handler for that kind.
type Event interface {
	// Kind returns the lifecycle event kind this payload belongs to.
	Kind() Kind
	// TicketID returns the identifier of the ticket in the external system.
	TicketID() string
}

// FirstAssignment is the payload for the first assignment of an incidence.
type FirstAssignment struct {
	ExternalTicketID string `json:"external_ticket_id"`
}

// Kind implements Event.
func (FirstAssignment) Kind() Kind { return KindFirstAssignment }

// TicketID implements Event.
func (e FirstAssignment) TicketID() string { return e.ExternalTicketID }

// Active is the payload for an incidence entering the active state.
type Active struct {
	ExternalTicketID string `json:"external_ticket_id"`
	CauseStatus      string `json:"cause_status"`
}

// Kind implements Event.
func (Active) Kind() Kind { return KindActive }

// TicketID implements Event.
func (e Active) TicketID() string { return e.ExternalTicketID }

// Delayed is the payload for an incidence whose handling was delayed.
type Delayed struct {
	ExternalTicketID string `json:"external_ticket_id"`
	CauseStatus      string `json:"cause_status"`
	DelayedReason    string `json:"delayed_reason"`
}

// Kind implements Event.
func (Delayed) Kind() Kind { return KindDelayed }

// TicketID implements Event.
func (e Delayed) TicketID() string { return e.ExternalTicketID }

// Restored is the payload for a restored service.
type Restored struct {
	ExternalTicketID string `json:"external_ticket_id"`
	CauseStatus      string `json:"cause_status"`
}

// Kind implements Event.
func (Restored) Kind() Kind { return KindRestored }

// TicketID implements Event.
func (e Restored) TicketID() string { return e.ExternalTicketID }

// Solved is the payload for a solved incidence.
type Solved struct {
	ExternalTicketID string `json:"external_ticket_id"`
	CauseStatus      string `json:"cause_status"`
}

// Kind implements Event.
func (Solved) Kind() Kind { return KindSolved }

// TicketID implements Event.
func (e Solved) TicketID() string { return e.ExternalTicketID }

// ActiveAfterSolved is the payload for a solved incidence that reopened.
type ActiveAfterSolved struct {
	ExternalTicketID string `json:"external_ticket_id"`
	CauseStatus      string `json:"cause_status"`
}

// Kind implements Event.
func (ActiveAfterSolved) Kind() Kind { return KindActiveAfterSolved }

// TicketID implements Event.
func (e ActiveAfterSolved) TicketID() string { return e.ExternalTicketID }

// AddedNote is the payload for a note added to an incidence.
type AddedNote struct {
	ExternalTicketID string `json:"external_ticket_id"`
	Annotation       string `json:"annotation"`
}

// Kind implements Event.
func (AddedNote) Kind() Kind { return KindAddedNote }

// TicketID implements Event.
func (e AddedNote) TicketID() string { return e.ExternalTicketID }

// AddedAttachment is the payload for an attachment added to an incidence.
type AddedAttachment struct {
	ExternalTicketID string `json:"external_ticket_id"`
	URI              string `json:"uri"`
	Name             string `json:"name"`
}

// Kind implements Event.
func (AddedAttachment) Kind() Kind { return KindAddedAttachment }

// TicketID implements Event.
func (e AddedAttachment) TicketID() string { return e.ExternalTicketID }
