package codec

import "fmt"

// Format is a compact on-wire indicator of payload encoding, carried as the
// first byte of an encoded body.
type Format uint8

const (
    FormatUnknown Format = iota
    FormatJSON
    FormatCBOR
)

func (f Format) String() string {
    switch f {
    case FormatJSON:
        return ContentJSON
    case FormatCBOR:
        return ContentCBOR
    default:
        return "unknown"
    }
}

// For returns a codec instance for a format, preferring a registered one.
func For(r *Registry, f Format) (Codec, error) {
    switch f {
    case FormatJSON:
        if c := r.Get(ContentJSON); c != nil {
            return c, nil
        }
        return JSON(), nil
    case FormatCBOR:
        if c := r.Get(ContentCBOR); c != nil {
            return c, nil
        }
        return CBOR()
    default:
        return nil, fmt.Errorf("codec: unknown format %d", f)
    }
}

// EncodeBody serializes v with the codec for f and prefixes the format byte.
func EncodeBody(r *Registry, f Format, v any) ([]byte, error) {
    c, err := For(r, f)
    if err != nil { return nil, err }
    b, err := c.Marshal(v)
    if err != nil { return nil, err }
    out := make([]byte, 1+len(b))
    out[0] = byte(f)
    copy(out[1:], b)
    return out, nil
}

// DecodeBody decodes a payload produced by EncodeBody into v.
func DecodeBody(r *Registry, payload []byte, v any) (Format, error) {
    if len(payload) == 0 {
        return FormatUnknown, fmt.Errorf("codec: empty payload")
    }
    f := Format(payload[0])
    c, err := For(r, f)
    if err != nil { return f, err }
    if err := c.Unmarshal(payload[1:], v); err != nil { return f, err }
    return f, nil
}
