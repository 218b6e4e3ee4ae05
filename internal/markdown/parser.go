package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown processing.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(),
	}
}

// Note contains extracted metadata from a markdown note.
type Note struct {
	Content     []byte
	Frontmatter *Frontmatter
	Headings    []Heading
	WikiLinks   []WikiLink
}

// Parse parses note content and extracts the metadata the index stores.
func (p *Parser) Parse(content []byte) *Note {
	reader := text.NewReader(content)
	doc := p.md.Parser().Parse(reader)

	note := &Note{
		Content:     content,
		Frontmatter: ExtractFrontmatter(content),
		Headings:    ExtractHeadings(content),
		WikiLinks:   ExtractWikiLinks(content),
	}

	_ = doc // goldmark AST available for future use
	return note
}
