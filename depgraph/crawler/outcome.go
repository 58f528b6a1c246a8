package crawler

// Status classifies the result of resolving one path.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusDirectory
	StatusUnsupportedType
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusDirectory:
		return "directory"
	case StatusUnsupportedType:
		return "unsupported_type"
	default:
		return "unknown"
	}
}

// Outcome is the result of resolving one path. Content is only set for StatusFound.
type Outcome struct {
	Status  Status
	Content string
}

// Reason returns a human-readable explanation for non-found outcomes.
func (o Outcome) Reason() string {
	switch o.Status {
	case StatusNotFound:
		return "file not found"
	case StatusDirectory:
		return "expected a file, but got a directory"
	case StatusUnsupportedType:
		return "expected a JavaScript module file"
	default:
		return ""
	}
}
