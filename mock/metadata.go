package mock

import "github.com/fwojciec/swi"

var _ swi.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of swi.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(markup string) (*swi.Metadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(markup string) (*swi.Metadata, error) {
	return e.ExtractMetadataFn(markup)
}
