package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError wraps a malformed-XML failure with the offending reader's
// position, where the standard decoder makes one available.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xmltree: malformed XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads an XML document and returns its root element as a Node.
// Namespaces are stripped: every element and attribute name is reduced
// to its local part, which is what lets a document's xml_namespace
// (manifest.json) be ignored at this layer rather than threaded through
// every caller.
func Parse(r io.Reader) (name string, root Node, err error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", nil, &ParseError{Err: fmt.Errorf("no root element found")}
			}
			return "", nil, &ParseError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			n, err := parseElement(dec, start)
			if err != nil {
				return "", nil, err
			}
			return start.Name.Local, n, nil
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (Node, error) {
	m := NewMap()
	// xmlns and other attributes are recorded uniformly with an "@"
	// sigil; the sanitizer (§4.D) strips it like any other disallowed
	// character.
	for _, attr := range start.Attr {
		m.Append("@"+attr.Name.Local, &Scalar{Value: attr.Value, Present: true})
	}

	hasChildElem := false
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			hasChildElem = true
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			m.Append(t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if !hasChildElem && len(m.entries) == 0 {
				trimmed := strings.TrimSpace(text.String())
				return &Scalar{Value: trimmed, Present: trimmed != ""}, nil
			}
			if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
				m.Append("#text", &Scalar{Value: trimmed, Present: true})
			}
			return m, nil
		}
	}
}
