package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/swi"
	"github.com/tidwall/gjson"
)

// Ensure MetadataExtractor implements swi.MetadataExtractor at compile time.
var _ swi.MetadataExtractor = (*MetadataExtractor)(nil)

// Metadata syntaxes, in the order they appear in the extracted tree.
const (
	SyntaxMicrodata = "microdata"
	SyntaxOpenGraph = "opengraph"
	SyntaxJSONLD    = "json-ld"
)

// MetadataExtractor extracts microdata, OpenGraph and JSON-LD annotations.
// The tree root maps each syntax to a list of entries.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata parses markup and returns its metadata tree.
func (e *MetadataExtractor) ExtractMetadata(markup string) (*swi.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, swi.Errorf(swi.EINVALID, "failed to parse HTML: %v", err)
	}

	root := swi.NewMap()
	root.Set(SyntaxMicrodata, microdata(doc))
	root.Set(SyntaxOpenGraph, openGraph(doc))
	root.Set(SyntaxJSONLD, jsonLD(doc))
	return root, nil
}

// microdata returns every top-level item: itemscope elements that are not
// themselves a property of another item.
func microdata(doc *goquery.Document) *swi.Metadata {
	items := swi.NewList()
	doc.Find("[itemscope]").Not("[itemprop]").Each(func(_ int, sel *goquery.Selection) {
		items.Append(microdataItem(sel))
	})
	return items
}

func microdataItem(sel *goquery.Selection) *swi.Metadata {
	item := swi.NewMap()
	if typ, ok := sel.Attr("itemtype"); ok && typ != "" {
		item.Set("type", swi.NewScalar(typ))
	}
	if id, ok := sel.Attr("itemid"); ok && id != "" {
		item.Set("id", swi.NewScalar(id))
	}

	props := swi.NewMap()
	stack := reverse(sel.Children())
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		_, scoped := cur.Attr("itemscope")
		if names, ok := cur.Attr("itemprop"); ok {
			var value *swi.Metadata
			if scoped {
				value = microdataItem(cur)
			} else {
				value = swi.NewScalar(propertyValue(cur))
			}
			for _, name := range strings.Fields(names) {
				addProperty(props, name, value)
			}
		}
		// Properties beneath a nested item belong to that item.
		if scoped {
			continue
		}
		stack = append(stack, reverse(cur.Children())...)
	}
	item.Set("properties", props)
	return item
}

// addProperty stores value under name, turning repeated properties into a list.
func addProperty(props *swi.Metadata, name string, value *swi.Metadata) {
	existing, ok := props.Get(name)
	switch {
	case !ok:
		props.Set(name, value)
	case existing.Kind == swi.MetadataList:
		existing.Append(value)
	default:
		props.Set(name, swi.NewList(existing, value))
	}
}

// propertyValue follows the HTML microdata rules for property values.
func propertyValue(sel *goquery.Selection) string {
	attr := ""
	switch goquery.NodeName(sel) {
	case "meta":
		attr = "content"
	case "audio", "embed", "iframe", "img", "source", "track", "video":
		attr = "src"
	case "a", "area", "link":
		attr = "href"
	case "object":
		attr = "data"
	case "data", "meter":
		attr = "value"
	case "time":
		if v, ok := sel.Attr("datetime"); ok {
			return v
		}
	}
	if attr != "" {
		return sel.AttrOr(attr, "")
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// openGraph collects og:* meta properties as [property, content] pairs.
func openGraph(doc *goquery.Document) *swi.Metadata {
	props := swi.NewList()
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, sel *goquery.Selection) {
		property := sel.AttrOr("property", "")
		content, ok := sel.Attr("content")
		if !ok {
			return
		}
		props.Append(swi.NewList(swi.NewScalar(property), swi.NewScalar(content)))
	})

	entries := swi.NewList()
	if len(props.Items) > 0 {
		entry := swi.NewMap()
		entry.Set("properties", props)
		entries.Append(entry)
	}
	return entries
}

// jsonLD parses every JSON-LD script. Top-level arrays are flattened into
// the list; scripts holding invalid JSON are skipped.
func jsonLD(doc *goquery.Document) *swi.Metadata {
	entries := swi.NewList()
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !gjson.Valid(text) {
			return
		}
		r := gjson.Parse(text)
		if r.IsArray() {
			r.ForEach(func(_, v gjson.Result) bool {
				if m := fromJSON(v); m != nil {
					entries.Append(m)
				}
				return true
			})
			return
		}
		if m := fromJSON(r); m != nil {
			entries.Append(m)
		}
	})
	return entries
}

// fromJSON converts a gjson result into a metadata node, keeping object
// keys in document order. JSON null yields nil.
func fromJSON(r gjson.Result) *swi.Metadata {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		return swi.NewScalar(r.Str)
	case gjson.Number, gjson.True, gjson.False:
		return swi.NewScalar(r.Raw)
	}

	if r.IsArray() {
		list := swi.NewList()
		r.ForEach(func(_, v gjson.Result) bool {
			if m := fromJSON(v); m != nil {
				list.Append(m)
			}
			return true
		})
		return list
	}

	obj := swi.NewMap()
	r.ForEach(func(k, v gjson.Result) bool {
		if m := fromJSON(v); m != nil {
			obj.Set(k.Str, m)
		}
		return true
	})
	return obj
}

// reverse returns the nodes of sel as single-node selections in reverse
// order, ready to be pushed on a stack.
func reverse(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		out[len(out)-1-i] = s
	})
	return out
}
