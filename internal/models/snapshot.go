package models

import "time"

// Snapshot is the whole persisted state of the store. Every save overwrites
// the previous snapshot in full; there is no partial-field patching at the
// storage layer.
//
// ActiveSessionToken pairs with ActiveIdentityID: restoring a session after
// restart requires a valid, unexpired token whose embedded id matches, so a
// hand-edited snapshot cannot resurrect an arbitrary session.
type Snapshot struct {
	Revision           string                `json:"revision"`
	SavedAt            time.Time             `json:"saved_at"`
	Identities         []Identity            `json:"identities"`
	Credentials        map[string]Credential `json:"credentials"`
	Overlay            []OverlayRecord       `json:"overlay"`
	ActiveIdentityID   *int64                `json:"active_identity_id"`
	ActiveSessionToken string                `json:"active_session_token,omitempty"`
}
