package compress

// Codec encodes cache payloads before they go to redis and decodes them on
// the way back.
type Codec interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// ForName returns the codec configured under the given name, defaulting to
// gzip for unknown names.
func ForName(name string) Codec {
	switch name {
	case "nop":
		return NewNop()
	case "brotli":
		return NewBrotli()
	case "lz4":
		return NewLZ4()
	default:
		return NewGZip()
	}
}
