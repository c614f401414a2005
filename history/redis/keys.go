package redis

// Redis key naming conventions for notification history.
// All keys are prefixed with "notify:" to avoid collisions.

const keyPrefix = "notify:"

// recordKey returns the Hash key for a history record: notify:history:{id}
func recordKey(id string) string { return keyPrefix + "history:" + id }

// recordIDsKey is the Set tracking all record IDs for enumeration.
const recordIDsKey = keyPrefix + "history_ids"

// incidenceKey returns the Set key tracking record IDs per incidence:
// notify:incidence:{incidenceID}
func incidenceKey(incidenceID string) string {
	return keyPrefix + "incidence:" + incidenceID
}
