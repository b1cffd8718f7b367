package qunit

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// NormalizeImport inserts the target import when the classifier did not find
// one. The import becomes the second top-level statement, on its own line
// after the first statement, so a header statement (or the comments leading
// it) stays at the top of the file. An existing import is never reconciled.
// It reports whether an import was inserted.
func NormalizeImport(doc *Document, c Classification, target Target, opts PrintOptions) bool {
	if c.HasImport {
		return false
	}

	nl := doc.Newline()
	text := ImportText(target, opts, nl)
	src := doc.Source

	stmts := doc.Statements()
	if len(stmts) == 0 {
		at := uint32(len(src))
		if at > 0 && src[at-1] != '\n' {
			doc.Insert(at, nl+text+nl)
		} else {
			doc.Insert(at, text+nl)
		}
		return true
	}

	start, end, sameLine := placement(doc, stmts[0])
	switch {
	case sameLine:
		doc.ReplaceRange(start, end, nl+text+nl)
	case int(start) == len(src) && (start == 0 || src[start-1] != '\n'):
		doc.Insert(start, nl+text)
	default:
		doc.Insert(start, text+nl)
	}
	return true
}

// placement finds where the import goes relative to first. Normally that is
// the beginning of the line after first (after any comments trailing it). If
// another statement starts on the same line, the whitespace gap in front of it
// is returned with sameLine set.
func placement(doc *Document, first *sitter.Node) (start, end uint32, sameLine bool) {
	src := doc.Source
	pos := first.EndByte()

	var siblings []*sitter.Node
	for i := 0; i < int(doc.Root.NamedChildCount()); i++ {
		child := doc.Root.NamedChild(i)
		if child.StartByte() >= pos {
			siblings = append(siblings, child)
		}
	}

	for {
		lineEnd := uint32(len(src))
		if idx := bytes.IndexByte(src[pos:], '\n'); idx >= 0 {
			lineEnd = pos + uint32(idx)
		}

		var next *sitter.Node
		for _, sib := range siblings {
			if sib.StartByte() >= pos && sib.StartByte() < lineEnd {
				next = sib
				break
			}
		}

		if next == nil {
			if lineEnd == uint32(len(src)) {
				return lineEnd, lineEnd, false
			}
			return lineEnd + 1, lineEnd + 1, false
		}

		if next.Type() == "comment" {
			// A trailing comment belongs to the first statement's line. A block
			// comment may span lines; resume scanning where it ends.
			pos = next.EndByte()
			continue
		}

		gap := src[pos:next.StartByte()]
		if len(bytes.TrimSpace(gap)) == 0 {
			return pos, next.StartByte(), true
		}
		return pos, pos, true
	}
}

// ImportText renders the named import of target using opts. The specifier
// list wraps one name per line when the single-line form exceeds
// opts.LineWidth.
func ImportText(target Target, opts PrintOptions, nl string) string {
	from := " from " + quote(target.Module, opts.Quote) + ";"

	line := "import { " + strings.Join(target.Names, ", ") + " }" + from
	if opts.LineWidth <= 0 || len(line) <= opts.LineWidth || len(target.Names) < 2 {
		return line
	}

	indent := strings.Repeat(" ", opts.TabWidth)
	var b strings.Builder
	b.WriteString("import {")
	b.WriteString(nl)
	for i, name := range target.Names {
		b.WriteString(indent)
		b.WriteString(name)
		if i < len(target.Names)-1 {
			b.WriteByte(',')
		}
		b.WriteString(nl)
	}
	b.WriteString("}")
	b.WriteString(from)
	return b.String()
}

func quote(s string, q rune) string {
	var b strings.Builder
	b.WriteRune(q)
	for _, r := range s {
		switch r {
		case '\\', q:
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune(q)
	return b.String()
}
