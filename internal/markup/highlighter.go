// Package markup renders a document's serialized markup for the preview
// pane and computes syntax highlights over it with tree-sitter.
package markup

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	htmllang "github.com/smacker/go-tree-sitter/html"

	"github.com/forma-editor/forma/internal/logger"
)

//go:embed queries/html/highlights.scm
var htmlHighlightsQuery []byte

// StyledRange is one highlighted span on a single line, in rune columns.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}

// Highlights maps line number to the styled ranges on that line.
type Highlights map[int][]StyledRange

// Highlighter parses markup and runs the highlight query over the tree.
// Parsing is whole-document: preview sources are small enough that
// incremental re-parse buys nothing.
type Highlighter struct {
	parser *sitter.Parser
	lang   *sitter.Language
	query  *sitter.Query
}

// NewHighlighter creates the highlighter with the query compiled up front,
// so a broken query file fails at startup instead of on the first redraw.
func NewHighlighter() (*Highlighter, error) {
	lang := htmllang.GetLanguage()
	query, err := sitter.NewQuery(htmlHighlightsQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("compiling highlight query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{parser: parser, lang: lang, query: query}, nil
}

// Highlight parses source and returns per-line styled ranges. A capture that
// spans lines is clamped to the end of its start line.
func (h *Highlighter) Highlight(ctx context.Context, source []byte) (Highlights, error) {
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	defer tree.Close()

	lines := strings.Split(string(source), "\n")

	qc := sitter.NewQueryCursor()
	qc.Exec(h.query, tree.RootNode())

	highlights := make(Highlights)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			name := h.query.CaptureNameForId(capture.Index)
			node := capture.Node

			start := node.StartPoint()
			end := node.EndPoint()
			line := int(start.Row)
			if line >= len(lines) {
				continue
			}
			lineBytes := []byte(lines[line])

			startCol := byteOffsetToRuneIndex(lineBytes, int(start.Column))
			endCol := utf8.RuneCount(lineBytes)
			if start.Row == end.Row {
				endCol = byteOffsetToRuneIndex(lineBytes, int(end.Column))
			}
			if endCol <= startCol {
				continue
			}

			highlights[line] = append(highlights[line], StyledRange{
				StartCol:  startCol,
				EndCol:    endCol,
				StyleName: styleName(name),
			})
		}
	}

	logger.Debugf("Markup: Highlighted %d line(s)", len(highlights))
	return highlights, nil
}

// styleName maps a query capture name to a theme style name, keeping the
// part before the first dot ("string.special" -> "string").
func styleName(capture string) string {
	capture = strings.TrimPrefix(capture, "@")
	if dot := strings.Index(capture, "."); dot != -1 {
		return capture[:dot]
	}
	return capture
}

func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	offset := 0
	for offset < byteOffset {
		_, size := utf8.DecodeRune(line[offset:])
		if size == 0 || offset+size > byteOffset {
			break
		}
		offset += size
		runeIndex++
	}
	return runeIndex
}
