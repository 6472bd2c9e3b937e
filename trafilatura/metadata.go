// Package trafilatura enriches page metadata with the document-level
// fields go-trafilatura infers from markup heuristics.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/swi"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetadataExtractor implements swi.MetadataExtractor at compile time.
var _ swi.MetadataExtractor = (*MetadataExtractor)(nil)

// KeyPage is the root key under which page metadata is stored.
const KeyPage = "page"

// MetadataExtractor decorates a swi.MetadataExtractor, adding a page branch
// with title, author, date, site name, description, image, categories and
// tags. Pages trafilatura cannot process are returned unchanged.
type MetadataExtractor struct {
	base swi.MetadataExtractor
}

// NewMetadataExtractor creates a new MetadataExtractor wrapping base.
func NewMetadataExtractor(base swi.MetadataExtractor) *MetadataExtractor {
	return &MetadataExtractor{base: base}
}

// ExtractMetadata implements swi.MetadataExtractor.
func (e *MetadataExtractor) ExtractMetadata(markup string) (*swi.Metadata, error) {
	meta, err := e.base.ExtractMetadata(markup)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = swi.NewMap()
	}
	if strings.TrimSpace(markup) == "" {
		return meta, nil
	}

	result, err := trafilatura.Extract(strings.NewReader(markup), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil || result == nil {
		return meta, nil
	}
	if page := pageMetadata(result.Metadata); len(page.Keys) > 0 {
		meta.Set(KeyPage, page)
	}
	return meta, nil
}

func pageMetadata(m trafilatura.Metadata) *swi.Metadata {
	page := swi.NewMap()
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			page.Set(key, swi.NewScalar(value))
		}
	}
	set("title", m.Title)
	set("author", m.Author)
	if !m.Date.IsZero() {
		set("date", m.Date.Format("2006-01-02"))
	}
	set("sitename", m.Sitename)
	set("description", m.Description)
	set("image", m.Image)
	setList(page, "categories", m.Categories)
	setList(page, "tags", m.Tags)
	return page
}

func setList(page *swi.Metadata, key string, values []string) {
	list := swi.NewList()
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			list.Append(swi.NewScalar(v))
		}
	}
	if len(list.Items) > 0 {
		page.Set(key, list)
	}
}
