package markdown

import (
	"context"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// PageURIPrefix marks links that point at another page.
const PageURIPrefix = "bismuth://pages/"

var (
	numberedItem = regexp.MustCompile(`^\d+[.)]\s+`)
	dividerLine  = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	pageLinkLine = regexp.MustCompile(`^\[([^\]]*)\]\(` + regexp.QuoteMeta(PageURIPrefix) + `([^)\s]+)\)$`)
)

// Normaliser parses Markdown into typed blocks.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// frontMatter holds the page fields read from a YAML header.
type frontMatter struct {
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
	Cover string `yaml:"cover"`
}

// Normalise converts a Markdown document to a page draft.
//
// The title comes from the front matter, then a leading "# " heading, then
// the file name. A leading heading equal to the front matter title is
// dropped so exported pages import without a duplicate heading.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.PageDraft, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := strings.ReplaceAll(string(raw.Content), "\r\n", "\n")
	fm, body := splitFrontMatter(text)

	draft := &domain.PageDraft{
		Title:  strings.TrimSpace(fm.Title),
		Icon:   optional(fm.Icon),
		Cover:  optional(fm.Cover),
		Blocks: nest(scan(strings.Split(body, "\n"))),
	}

	if len(draft.Blocks) > 0 {
		first := draft.Blocks[0]
		if first.Type.Kind == domain.BlockKindHeading1 && len(first.Children) == 0 &&
			(draft.Title == "" || draft.Title == first.Content) {
			draft.Title = first.Content
			draft.Blocks = draft.Blocks[1:]
		}
	}
	if draft.Title == "" {
		draft.Title = raw.BaseTitle()
	}

	return draft, nil
}

// splitFrontMatter separates a leading "---" delimited YAML header.
// Documents without a closed header are returned whole.
func splitFrontMatter(text string) (frontMatter, string) {
	var fm frontMatter

	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return fm, text
	}

	var header, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		body = rest[len("---\n"):]
	default:
		idx := strings.Index(rest, "\n---\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n---") {
				return fm, text
			}
			idx = len(rest) - len("\n---")
			header = rest[:idx]
			break
		}
		header, body = rest[:idx], rest[idx+len("\n---\n"):]
	}

	// A header that is not a YAML mapping is ordinary content between
	// two dividers.
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		logger.Debug("Ignoring front matter: %v", err)
		return frontMatter{}, text
	}
	return fm, body
}

// item is a parsed block with its indentation depth.
type item struct {
	depth int
	draft domain.BlockDraft
}

// scan turns lines into a flat list of blocks. Indentation of two spaces
// (or one tab) is one nesting level.
func scan(lines []string) []item {
	var (
		items     []item
		para      []string
		paraDepth int
	)

	flush := func() {
		if len(para) == 0 {
			return
		}
		items = append(items, item{depth: paraDepth, draft: draftOf(domain.BlockKindText, strings.Join(para, "\n"))})
		para = nil
	}
	add := func(depth int, d domain.BlockDraft) {
		flush()
		items = append(items, item{depth: depth, draft: d})
	}

	for i := 0; i < len(lines); i++ {
		raw := lines[i]
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}

		line := strings.TrimLeft(raw, " \t")
		prefix := raw[:len(raw)-len(line)]
		depth := indentWidth(prefix) / 2
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "```"):
			var code []string
			for i++; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == "```" {
					break
				}
				code = append(code, strings.TrimPrefix(lines[i], prefix))
			}
			d := draftOf(domain.BlockKindCode, strings.Join(code, "\n"))
			d.Type.Language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			add(depth, d)

		case dividerLine.MatchString(trimmed):
			add(depth, draftOf(domain.BlockKindDivider, ""))

		case headingLevel(line) > 0:
			level := headingLevel(line)
			kind := [...]domain.BlockKind{domain.BlockKindHeading1, domain.BlockKindHeading2, domain.BlockKindHeading3}[min(level, 3)-1]
			add(depth, draftOf(kind, strings.TrimSpace(line[level:])))

		case isTodo(line):
			d := draftOf(domain.BlockKindTodo, line[len("- [ ] "):])
			d.Type.Checked = line[3] == 'x' || line[3] == 'X'
			add(depth, d)

		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ "):
			add(depth, draftOf(domain.BlockKindBulletList, line[2:]))

		case numberedItem.MatchString(line):
			add(depth, draftOf(domain.BlockKindNumberedList, numberedItem.ReplaceAllString(line, "")))

		case strings.HasPrefix(line, ">"):
			quote := []string{unquote(line)}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimPrefix(lines[i+1], prefix), ">") {
				i++
				quote = append(quote, unquote(strings.TrimPrefix(lines[i], prefix)))
			}
			add(depth, draftOf(domain.BlockKindQuote, strings.Join(quote, "\n")))

		case pageLinkLine.MatchString(trimmed):
			m := pageLinkLine.FindStringSubmatch(trimmed)
			d := draftOf(domain.BlockKindPageLink, m[1])
			d.Type.PageID = m[2]
			add(depth, d)

		default:
			if len(para) == 0 {
				paraDepth = depth
			}
			para = append(para, line)
		}
	}
	flush()

	return items
}

// nest builds the block tree: each item owns the following items that
// are indented deeper than it.
func nest(items []item) []domain.BlockDraft {
	var out []domain.BlockDraft
	for i := 0; i < len(items); {
		j := i + 1
		for j < len(items) && items[j].depth > items[i].depth {
			j++
		}
		d := items[i].draft
		d.Children = nest(items[i+1 : j])
		out = append(out, d)
		i = j
	}
	return out
}

func draftOf(kind domain.BlockKind, content string) domain.BlockDraft {
	return domain.BlockDraft{Type: domain.BlockType{Kind: kind}, Content: content}
}

// headingLevel returns the number of leading '#' of an ATX heading, or 0.
func headingLevel(line string) int {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	if level == 0 || level > 6 {
		return 0
	}
	if len(line) > level && line[level] != ' ' {
		return 0
	}
	return level
}

func isTodo(line string) bool {
	if len(line) < len("- [ ] ") {
		return false
	}
	if line[0] != '-' && line[0] != '*' {
		return false
	}
	return line[1] == ' ' && line[2] == '[' && strings.ContainsRune(" xX", rune(line[3])) &&
		line[4] == ']' && line[5] == ' '
}

func unquote(line string) string {
	line = strings.TrimPrefix(line, ">")
	return strings.TrimPrefix(line, " ")
}

func indentWidth(prefix string) int {
	width := 0
	for _, r := range prefix {
		if r == '\t' {
			width += 2
			continue
		}
		width++
	}
	return width
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
