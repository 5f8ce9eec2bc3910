package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Write serializes n as indented SVG markup.
func Write(w io.Writer, n *Node) error {
	var buf bytes.Buffer
	writeNode(&buf, n, 0)
	_, err := w.Write(buf.Bytes())
	return err
}

// Marshal serializes n as indented SVG markup.
func Marshal(n *Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, n, 0)
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(n.Kind)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(EscapeXML(a.Value))
		buf.WriteByte('"')
	}
	if len(n.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")
	for _, c := range n.Children {
		writeNode(buf, c, depth+1)
	}
	buf.WriteString(indent)
	buf.WriteString("</")
	buf.WriteString(n.Kind)
	buf.WriteString(">\n")
}

// EscapeXML escapes s for use in attribute values and text content.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
