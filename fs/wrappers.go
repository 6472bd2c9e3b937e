// Package fs provides file-based storage for wrapper tables.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/swi"
)

// Format is the on-disk encoding of a wrapper table.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// FormatOf returns the format implied by the extension of path. Anything
// other than .xml is JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return FormatXML
	}
	return FormatJSON
}

// WriteWrappers writes table to path in the format implied by its
// extension. The file is written to a temporary sibling and renamed into
// place, so readers never observe a partial table.
func WriteWrappers(path string, table swi.WrapperTable) error {
	data, err := Encode(table, FormatOf(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadWrappers reads a table written by WriteWrappers.
// Returns ENOTFOUND if path does not exist.
func ReadWrappers(path string) (swi.WrapperTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, swi.Errorf(swi.ENOTFOUND, "wrapper file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	return Decode(data, FormatOf(path))
}

// Encode serializes table in the given format.
func Encode(table swi.WrapperTable, format Format) ([]byte, error) {
	if format == FormatXML {
		return encodeXML(table)
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding wrappers: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a table serialized by Encode.
// Returns EINVALID on malformed input.
func Decode(data []byte, format Format) (swi.WrapperTable, error) {
	if format == FormatXML {
		return decodeXML(data)
	}
	var table swi.WrapperTable
	if err := json.Unmarshal(data, &table); err != nil {
		if swi.ErrorCode(err) == swi.EINVALID {
			return nil, err
		}
		return nil, swi.Errorf(swi.EINVALID, "invalid wrapper file: %v", err)
	}
	if table == nil {
		table = swi.WrapperTable{}
	}
	return table, nil
}

func encodeXML(table swi.WrapperTable) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("wrappers")
	for _, label := range table.Labels() {
		el := root.CreateElement("wrapper")
		el.CreateAttr("label", label)
		writeRecord(el, swi.NewWrapperRecord(table[label]))
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

func writeRecord(el *etree.Element, r swi.WrapperRecord) {
	el.CreateAttr("kind", string(r.Kind))
	if r.Selector != "" {
		el.CreateAttr("selector", r.Selector)
	}
	if r.Attribute != "" {
		el.CreateAttr("attribute", r.Attribute)
	}
	if r.Index != 0 {
		el.CreateAttr("index", strconv.Itoa(r.Index))
	}
	if r.Target != "" {
		el.CreateElement("target").SetText(r.Target)
	}
	if r.Pattern != nil {
		p := el.CreateElement("pattern")
		p.CreateAttr("leading", strconv.Itoa(r.Pattern.Leading))
		p.CreateAttr("trailing", strconv.Itoa(r.Pattern.Trailing))
		if r.Pattern.Exclude != "" {
			p.CreateAttr("exclude", r.Pattern.Exclude)
		}
	}
	if len(r.Path) > 0 {
		path := el.CreateElement("path")
		for _, step := range r.Path {
			if step.IsIndex {
				path.CreateElement("index").SetText(strconv.Itoa(step.Index))
			} else {
				path.CreateElement("key").SetText(step.Key)
			}
		}
	}
	if len(r.Shape) > 0 {
		shape := el.CreateElement("shape")
		for _, s := range r.Shape {
			shape.CreateElement("step").SetText(s)
		}
	}
	for _, m := range r.Members {
		writeRecord(el.CreateElement("member"), m)
	}
}

func decodeXML(data []byte) (swi.WrapperTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, swi.Errorf(swi.EINVALID, "invalid wrapper file: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "wrappers" {
		return nil, swi.Errorf(swi.EINVALID, "invalid wrapper file: missing <wrappers> root")
	}

	table := swi.WrapperTable{}
	for _, el := range root.SelectElements("wrapper") {
		label := el.SelectAttrValue("label", "")
		if label == "" {
			return nil, swi.Errorf(swi.EINVALID, "wrapper without label")
		}
		r, err := readRecord(el)
		if err != nil {
			return nil, err
		}
		w, err := r.Wrapper()
		if err != nil {
			return nil, err
		}
		table[label] = w
	}
	return table, nil
}

func readRecord(el *etree.Element) (swi.WrapperRecord, error) {
	r := swi.WrapperRecord{
		Kind:      swi.WrapperKind(el.SelectAttrValue("kind", "")),
		Selector:  el.SelectAttrValue("selector", ""),
		Attribute: el.SelectAttrValue("attribute", ""),
	}
	var err error
	if r.Index, err = intAttr(el, "index", 0); err != nil {
		return r, err
	}
	if t := el.SelectElement("target"); t != nil {
		r.Target = t.Text()
	}
	if p := el.SelectElement("pattern"); p != nil {
		r.Pattern = &swi.Pattern{Exclude: p.SelectAttrValue("exclude", "")}
		if r.Pattern.Leading, err = intAttr(p, "leading", 0); err != nil {
			return r, err
		}
		if r.Pattern.Trailing, err = intAttr(p, "trailing", 0); err != nil {
			return r, err
		}
	}
	if path := el.SelectElement("path"); path != nil {
		for _, step := range path.ChildElements() {
			switch step.Tag {
			case "key":
				r.Path = append(r.Path, swi.PathStep{Key: step.Text()})
			case "index":
				i, err := strconv.Atoi(strings.TrimSpace(step.Text()))
				if err != nil {
					return r, swi.Errorf(swi.EINVALID, "invalid path index %q", step.Text())
				}
				r.Path = append(r.Path, swi.PathStep{Index: i, IsIndex: true})
			}
		}
	}
	if shape := el.SelectElement("shape"); shape != nil {
		for _, s := range shape.SelectElements("step") {
			r.Shape = append(r.Shape, s.Text())
		}
	}
	for _, m := range el.SelectElements("member") {
		mr, err := readRecord(m)
		if err != nil {
			return r, err
		}
		r.Members = append(r.Members, mr)
	}
	return r, nil
}

func intAttr(el *etree.Element, name string, def int) (int, error) {
	v := el.SelectAttrValue(name, "")
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, swi.Errorf(swi.EINVALID, "invalid %s %q on <%s>", name, v, el.Tag)
	}
	return i, nil
}
