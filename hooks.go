package aerocache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The connection calls them on hot paths.
type Hooks interface {
	// A Get completed without error.
	// outcome ∈ {"hit", "miss", "expired"}
	Lookup(storageKey, outcome string)

	// A stored record could not be turned into an envelope.
	// reason ∈ {"bad_record", "missing_item", "missing_stored", "item_decode"}
	CorruptEnvelope(storageKey, reason string)

	// The driver failed a data call. op ∈ {"get", "put", "remove"}.
	StoreFailure(op Op, storageKey string, err error)

	// Start could not dial the store.
	ConnectFailure(err error)

	// Readiness changed (Start succeeded or Stop dropped the handle).
	ReadyChanged(ready bool)
}

const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeExpired = "expired"

	ReasonBadRecord     = "bad_record"
	ReasonMissingItem   = "missing_item"
	ReasonMissingStored = "missing_stored"
	ReasonItemDecode    = "item_decode"
)

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Lookup(string, string)          {}
func (NopHooks) CorruptEnvelope(string, string) {}
func (NopHooks) StoreFailure(Op, string, error) {}
func (NopHooks) ConnectFailure(error)           {}
func (NopHooks) ReadyChanged(bool)              {}
