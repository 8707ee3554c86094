package rust

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const indent = "    "

func fieldText(n *sitter.Node, field string, src []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return c.Content(src)
}

// isPub reports whether the item is exactly `pub`. Restricted visibility such
// as pub(crate) is not part of the public API.
func isPub(n *sitter.Node, src []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "visibility_modifier" {
			return c.Content(src) == "pub"
		}
	}
	return false
}

func isComment(n *sitter.Node) bool {
	return n.Type() == "line_comment" || n.Type() == "block_comment"
}

func commentText(n *sitter.Node, src []byte) string {
	return strings.TrimRight(n.Content(src), "\r\n")
}

func isOuterDoc(text string) bool {
	return (strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////")) ||
		(strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/")
}

func isInnerDoc(text string) bool {
	return strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "/*!")
}

// leading returns the outer doc comments and attributes directly attached to
// n, earliest first.
func leading(n *sitter.Node, src []byte) []*sitter.Node {
	var nodes []*sitter.Node
	for p := n.PrevNamedSibling(); p != nil; p = p.PrevNamedSibling() {
		if p.Type() == "attribute_item" || (isComment(p) && isOuterDoc(commentText(p, src))) {
			nodes = append(nodes, p)
			continue
		}
		break
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

// withLeading returns the source of n up to end, including its docs and
// attributes.
func withLeading(n *sitter.Node, src []byte, end uint32) string {
	start := n.StartByte()
	if lead := leading(n, src); len(lead) > 0 {
		start = lead[0].StartByte()
	}
	return strings.TrimRight(string(src[start:end]), " \t\r\n")
}

func attributes(n *sitter.Node, src []byte) []string {
	var attrs []string
	for _, l := range leading(n, src) {
		if l.Type() != "attribute_item" {
			continue
		}
		text := l.Content(src)
		text = strings.TrimSuffix(strings.TrimPrefix(text, "#["), "]")
		attrs = append(attrs, strings.TrimSpace(text))
	}
	return attrs
}

func hasAttribute(n *sitter.Node, src []byte, name string) bool {
	for _, attr := range attributes(n, src) {
		if attr == name || strings.HasPrefix(attr, name+"(") || strings.HasPrefix(attr, name+" ") || strings.HasPrefix(attr, name+"=") {
			return true
		}
	}
	return false
}

// isHidden reports items excluded from documentation: #[doc(hidden)] and
// #[cfg(test)].
func isHidden(n *sitter.Node, src []byte) bool {
	for _, attr := range attributes(n, src) {
		switch strings.ReplaceAll(attr, " ", "") {
		case "doc(hidden)", "cfg(test)":
			return true
		}
	}
	return false
}

// pathAttribute returns the value of #[path = "..."], if any.
func pathAttribute(n *sitter.Node, src []byte) string {
	for _, attr := range attributes(n, src) {
		rest, ok := strings.CutPrefix(attr, "path")
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "=")
		if !ok {
			continue
		}
		if v, err := strconv.Unquote(strings.TrimSpace(rest)); err == nil {
			return v
		}
	}
	return ""
}

// functionSignature drops the body of a function, keeping docs, attributes
// and the full signature including where clauses.
func functionSignature(n *sitter.Node, src []byte) string {
	end := n.EndByte()
	if body := n.ChildByFieldName("body"); body != nil {
		end = body.StartByte()
	}
	sig := withLeading(n, src, end)
	if !strings.HasSuffix(sig, ";") {
		sig += ";"
	}
	return sig
}

func isMember(n *sitter.Node, _ []byte) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "attribute_item", "inner_attribute_item":
		return false
	}
	return true
}

func isPubMember(n *sitter.Node, src []byte) bool {
	return isMember(n, src) && isPub(n, src)
}

func countMembers(n *sitter.Node, src []byte, keep func(*sitter.Node, []byte) bool) int {
	body := n.ChildByFieldName("body")
	if body == nil {
		return 0
	}
	count := 0
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if m := body.NamedChild(i); keep(m, src) && !isHidden(m, src) {
			count++
		}
	}
	return count
}

// renderBlock renders a trait or impl with the kept members reduced to
// signatures.
func renderBlock(n *sitter.Node, src []byte, keep func(*sitter.Node, []byte) bool) string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return withLeading(n, src, n.EndByte())
	}
	header := withLeading(n, src, body.StartByte())

	var members []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		m := body.NamedChild(i)
		if !keep(m, src) || isHidden(m, src) {
			continue
		}
		if m.Type() == "function_item" {
			members = append(members, functionSignature(m, src))
		} else {
			members = append(members, withLeading(m, src, m.EndByte()))
		}
	}
	if len(members) == 0 {
		return header + " {}"
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString(" {\n")
	for _, m := range members {
		b.WriteString(indent)
		b.WriteString(m)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// innerDocs collects the //! and /*! */ comments opening a module body.
func innerDocs(body *sitter.Node, src []byte) string {
	var lines []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "inner_attribute_item" {
			continue
		}
		if !isComment(c) {
			break
		}
		if text := commentText(c, src); isInnerDoc(text) {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// moduleDocFromOuter rewrites the /// docs on a mod declaration as inner
// docs so every namespace doc reads the same way.
func moduleDocFromOuter(n *sitter.Node, src []byte) string {
	var lines []string
	for _, l := range leading(n, src) {
		if !isComment(l) {
			continue
		}
		text := commentText(l, src)
		switch {
		case strings.HasPrefix(text, "///"):
			text = "//!" + strings.TrimPrefix(text, "///")
		case strings.HasPrefix(text, "/**"):
			text = "/*!" + strings.TrimPrefix(text, "/**")
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func joinDocs(docs ...string) string {
	var parts []string
	for _, d := range docs {
		if d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "\n")
}
