package ports

import (
	"io"

	"feedbacklens/domain/feedback"
)

// TableReader parses an uploaded file into a raw table. The core never
// touches files directly; this is the boundary to the IO layer.
type TableReader interface {
	// ReadTable parses the stream. The filename is used only to pick the
	// parser (csv vs xlsx).
	ReadTable(r io.Reader, filename string) (*feedback.RawTable, error)
}

// SampleSource provides bundled sample datasets by name, as an alternative
// to an upload.
type SampleSource interface {
	SampleNames() []string
	Sample(name string) (*feedback.RawTable, error)
}
