package types

// Event types emitted by the ledger.
const (
	EventTypeTransferInitiated = "transfer_initiated"
	EventTypeTransferCompleted = "transfer_completed"
	EventTypeTransferRefunded  = "transfer_refunded"
)

// Event attribute keys.
const (
	AttributeKeyTransferID = "transfer_id"
	AttributeKeyAmount     = "amount"
	AttributeKeyOriginator = "originator"
	AttributeKeyRecipient  = "recipient"
	AttributeKeyHashLock   = "hash_lock"
	AttributeKeyTimeLock   = "time_lock"
	AttributeKeySecret     = "secret"
)

// Attribute is a single key/value pair attached to an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a typed notification surfaced to off-chain observers (relayers,
// indexers). The secret appears only on completion events; initiation events
// carry every record field except the secret, which does not exist yet.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// NewEvent constructs an event from a type and attributes.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// NewAttribute constructs a single event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// AttributeValue returns the value for a key, if present.
func (e Event) AttributeValue(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// EventEmitter receives ledger events as they are emitted. Implementations
// must not block; emission happens inside the serialized operation.
type EventEmitter interface {
	EmitEvent(Event)
}
