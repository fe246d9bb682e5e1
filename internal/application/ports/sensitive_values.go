package ports

// SensitiveValueProvider accumulates secret values discovered while a
// request is being prepared, so they can be redacted from everything
// that leaves the process.
type SensitiveValueProvider interface {
	Track(value string)
	TrackAll(values []string)
	AllValues() []string
}
