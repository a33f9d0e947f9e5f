// Package scriptdoc writes the spoken manuscript as a readable document next
// to the deck, either as Markdown or as a standalone HTML page.
package scriptdoc

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"deckwright/internal/deck"
	"deckwright/internal/fileutil"
	"deckwright/internal/language"
)

// Format selects the document encoding.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts "html", "md" and "markdown". Blank selects HTML.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "html":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown script format %q", value)
	}
}

// Meta is the optional run information printed under the title.
type Meta struct {
	Topic           string
	DurationMinutes int
	Audience        string
	// Language is the spoken language; it sets the page's lang attribute.
	Language string
}

// Line renders the metadata fields that are set, joined with " | ".
func (m Meta) Line() string {
	var parts []string
	if topic := strings.TrimSpace(m.Topic); topic != "" {
		parts = append(parts, "Topic: "+topic)
	}
	if m.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %d min", m.DurationMinutes))
	}
	if audience := strings.TrimSpace(m.Audience); audience != "" {
		parts = append(parts, "Audience: "+audience)
	}
	return strings.Join(parts, " | ")
}

// PathFor returns "<deck stem>_script.<ext>" in the deck's directory.
func PathFor(deckPath string, format Format) string {
	dir := filepath.Dir(deckPath)
	stem := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
	return filepath.Join(dir, stem+"_script."+string(format))
}

// Markdown renders the manuscript: title heading, metadata line, then each
// section's heading and its paragraphs. Blank paragraphs are skipped. All
// text is escaped so the prose reads back verbatim.
func Markdown(m deck.Manuscript, meta Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", EscapeMarkdown(strings.TrimSpace(m.Title)))
	if line := meta.Line(); line != "" {
		fmt.Fprintf(&b, "*%s*\n\n", EscapeMarkdown(line))
	}
	for _, section := range m.Sections {
		if name := strings.TrimSpace(section.Name); name != "" {
			fmt.Fprintf(&b, "## %s\n\n", EscapeMarkdown(name))
		}
		for _, para := range Paragraphs(section.Content) {
			b.WriteString(EscapeMarkdown(para))
			b.WriteString("\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// inlineSpecial are the characters that start inline markup, raw HTML or
// entity references anywhere in a line.
const inlineSpecial = "\\`*_[]<>#&"

// EscapeMarkdown backslash-escapes text so CommonMark renders it literally.
// Inline markup characters are escaped everywhere; list, heading and rule
// markers only where they open a line.
func EscapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeLine(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line) + 8)
	trimmed := strings.TrimLeft(line, " \t")
	b.WriteString(line[:len(line)-len(trimmed)])

	// Block markers: "- ", "+ ", "=" underlines and "12." or "12)" list items.
	if trimmed != "" {
		switch trimmed[0] {
		case '-', '+', '=':
			b.WriteByte('\\')
			b.WriteByte(trimmed[0])
			trimmed = trimmed[1:]
		default:
			digits := len(trimmed) - len(strings.TrimLeft(trimmed, "0123456789"))
			if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
				b.WriteString(trimmed[:digits])
				b.WriteByte('\\')
				b.WriteByte(trimmed[digits])
				trimmed = trimmed[digits+1:]
			}
		}
	}
	for _, r := range trimmed {
		if r < 0x80 && strings.ContainsRune(inlineSpecial, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Paragraphs splits prose on blank lines and drops empty paragraphs.
func Paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, para := range strings.Split(content, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}

// HTML renders the manuscript as a self-contained page.
func HTML(m deck.Manuscript, meta Meta) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(m, meta)), &body); err != nil {
		return nil, fmt.Errorf("convert manuscript: %w", err)
	}
	lang := language.Tag(meta.Language)
	if lang == "" {
		lang = "en"
	}
	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n<meta charset=\"utf-8\">\n", html.EscapeString(lang))
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString(strings.TrimSpace(m.Title)))
	page.WriteString(pageStyle)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

const pageStyle = `<style>
body { font-family: Georgia, serif; max-width: 42rem; margin: 3rem auto; line-height: 1.6; padding: 0 1rem; }
h1 { text-align: center; }
h1 + p em { display: block; text-align: center; color: #555; }
p { margin: 0 0 0.5rem; }
</style>
`

// Render encodes the manuscript in format.
func Render(m deck.Manuscript, meta Meta, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(m, meta)), nil
	case FormatHTML:
		return HTML(m, meta)
	default:
		return nil, fmt.Errorf("unknown script format %q", format)
	}
}

// Write renders the manuscript and replaces path atomically.
func Write(path string, m deck.Manuscript, meta Meta, format Format) error {
	data, err := Render(m, meta, format)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write manuscript document: %w", err)
	}
	return nil
}
