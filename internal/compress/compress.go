package compress

// Compress encodes payloads before they hit the cache or an archive.
type Compress interface {
	Encode(data []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// FromName returns the codec registered under name, falling back to Nop.
func FromName(name string) Compress {
	switch name {
	case "gzip":
		return NewGZip()
	case "lz4":
		return NewLz4()
	case "brotli":
		return NewBrotli()
	default:
		return NewNop()
	}
}
