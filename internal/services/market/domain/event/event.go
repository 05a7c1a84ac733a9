// Package event defines the journal event type shared by every market
// state machine. All state mutations are expressed as typed events; folding
// the journal from the beginning reproduces the full chain state.
package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
)

// Type names an event, namespaced by the owning state machine
// ("region.proposed", "token.distributed", ...).
type Type string

// Event is one committed state transition.
type Event struct {
	ID          string            `json:"id"`
	Seq         uint64            `json:"seq"`
	Type        Type              `json:"type"`
	Height      chain.BlockNumber `json:"height"`
	Actor       chain.AccountID   `json:"actor"`
	Timestamp   time.Time         `json:"timestamp"`
	PayloadJSON json.RawMessage   `json:"payload"`
}

// New builds an event with a fresh id and the provided payload marshalled
// to JSON. Payload marshalling failures are programming errors surfaced to
// the caller.
func New(evtType Type, actor chain.AccountID, payload any) (Event, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", evtType, err)
	}
	return Event{
		ID:          uuid.NewString(),
		Type:        evtType,
		Actor:       actor,
		PayloadJSON: payloadJSON,
	}, nil
}

// Namespace returns the state-machine prefix of the event type.
func (e Event) Namespace() string {
	name := string(e.Type)
	if idx := strings.IndexByte(name, '.'); idx > 0 {
		return name[:idx]
	}
	return name
}

// Decode unmarshals the payload into target.
func (e Event) Decode(target any) error {
	if err := json.Unmarshal(e.PayloadJSON, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
