// Package codec serializes the small mutable records that travel next to raw
// specification bytes: update deltas and instance snapshots. Specifications
// themselves are never encoded here; they move by raw copy.
package codec

// Codec marshals typed records. Implementations must be deterministic and
// safe for cross-node exchange.
type Codec interface {
    ContentType() string
    Marshal(v any) ([]byte, error)
    Unmarshal(data []byte, v any) error
}

// Content types understood by the registry.
const (
    ContentJSON = "application/json"
    ContentCBOR = "application/cbor"
)

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry constructs a registry preloaded with JSON. CBOR carries an
// init-time error path, so it is added explicitly via Register(CBOR()).
func NewRegistry() *Registry {
    r := &Registry{byType: make(map[string]Codec)}
    r.Register(JSON())
    return r
}

// Register adds a codec.
func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns a codec by content type, or nil.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }
