package compress

// Nop passes payloads through untouched, for deployments where cache entries
// are small enough that compressing them buys nothing.
type Nop struct{}

var _ Codec = Nop{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) Encode(data []byte) ([]byte, error) {
	return data, nil
}

func (Nop) Decode(data []byte) ([]byte, error) {
	return data, nil
}
