package export

import (
	"bytes"
	"strings"
)

const (
	xmlHeader  = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<records>\n"
	xmlFooter  = "</records>"
	xmlRecOpen = "  <record>\n"
	xmlRecEnd  = "  </record>\n"
)

// xmlEncoder produces markup output: an XML declaration, a <records>
// root, and one <record> element per row with one child element per
// projected column.
//
// encoding/xml is not used: it renders apostrophes as &#39; and manages
// its own indentation, while this format fixes the entity set and the
// exact layout.
type xmlEncoder struct {
	proj  Projection
	state encoderState
	buf   bytes.Buffer
}

func newXMLEncoder(proj Projection) *xmlEncoder {
	return &xmlEncoder{proj: proj}
}

// Format returns FormatXML.
func (e *xmlEncoder) Format() Format {
	return FormatXML
}

// Start emits the declaration and the root-open tag.
func (e *xmlEncoder) Start() ([]byte, error) {
	if err := e.state.checkStart(); err != nil {
		return nil, err
	}
	return []byte(xmlHeader), nil
}

// EncodeRow emits one <record> element holding one child element per
// projected column, named by its target and holding the escaped
// normalized value.
func (e *xmlEncoder) EncodeRow(row Row) ([]byte, error) {
	if err := e.state.checkRow(); err != nil {
		return nil, err
	}

	e.buf.Reset()
	e.buf.WriteString(xmlRecOpen)
	for _, col := range e.proj {
		e.buf.WriteString("    <")
		e.buf.WriteString(col.Target)
		e.buf.WriteByte('>')
		e.buf.WriteString(escapeXML(Normalize(row[col.Source])))
		e.buf.WriteString("</")
		e.buf.WriteString(col.Target)
		e.buf.WriteString(">\n")
	}
	e.buf.WriteString(xmlRecEnd)

	return e.buf.Bytes(), nil
}

// Finish emits the root-close tag with no trailing newline.
func (e *xmlEncoder) Finish() ([]byte, error) {
	if err := e.state.checkFinish(); err != nil {
		return nil, err
	}
	return []byte(xmlFooter), nil
}

// escapeXML substitutes the five XML entities in fixed order, ampersand
// first so the entities it introduces are not re-escaped.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
