package sections

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// ErrNoSections is returned for a story with no level-1 headings.
var ErrNoSections = errors.New("story has no sections")

// Section is one level-1 heading and the blocks under it, flattened to
// plain text paragraphs.
type Section struct {
	Number     int
	Title      string
	Paragraphs []string
}

// Story is the text shown in the side panel.
type Story struct {
	Sections []Section
}

// LoadStory reads and parses a Markdown story file.
func LoadStory(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read story: %w", err)
	}
	return ParseStory(data)
}

// ParseStory parses Markdown into sections. Each level-1 heading starts a
// section; "# Title {#section4}" numbers it 4, otherwise sections count up
// from the previous number. Content before the first heading is dropped.
func ParseStory(src []byte) (*Story, error) {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.HeadingIDs)
	doc := markdown.Parse(src, p)

	story := &Story{}
	var cur *Section
	next := 1

	for _, block := range doc.GetChildren() {
		if h, ok := block.(*ast.Heading); ok && h.Level == 1 {
			n := next
			if id, ok := strings.CutPrefix(h.HeadingID, "section"); ok {
				if v, err := strconv.Atoi(id); err == nil && v > 0 {
					n = v
				}
			}
			next = n + 1
			story.Sections = append(story.Sections, Section{Number: n, Title: plainText(h)})
			cur = &story.Sections[len(story.Sections)-1]
			continue
		}
		if cur == nil {
			continue
		}
		cur.Paragraphs = append(cur.Paragraphs, blockText(block)...)
	}

	if len(story.Sections) == 0 {
		return nil, ErrNoSections
	}
	return story, nil
}

// Numbers returns the section numbers in document order.
func (s *Story) Numbers() []int {
	out := make([]int, len(s.Sections))
	for i, sec := range s.Sections {
		out[i] = sec.Number
	}
	return out
}

func blockText(n ast.Node) []string {
	switch n := n.(type) {
	case *ast.List:
		var items []string
		for i, item := range n.GetChildren() {
			bullet := "• "
			if n.ListFlags&ast.ListTypeOrdered != 0 {
				bullet = strconv.Itoa(max(n.Start, 1)+i) + ". "
			}
			items = append(items, bullet+plainText(item))
		}
		return items
	case *ast.CodeBlock:
		return []string{strings.TrimRight(string(n.Literal), "\n")}
	case *ast.HorizontalRule:
		return nil
	}
	if text := plainText(n); text != "" {
		return []string{text}
	}
	return nil
}

// plainText concatenates the literal text under n.
func plainText(n ast.Node) string {
	var buf bytes.Buffer
	ast.WalkFunc(n, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			if _, ok := node.(*ast.Paragraph); ok && buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			return ast.GoToNext
		}
		switch node := node.(type) {
		case *ast.Text:
			buf.WriteString(strings.ReplaceAll(string(node.Literal), "\n", " "))
		case *ast.Code:
			buf.Write(node.Literal)
		case *ast.Softbreak:
			buf.WriteByte(' ')
		case *ast.Hardbreak:
			buf.WriteByte('\n')
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(buf.String())
}
