// Package richtext handles the block-structured documents stored in note
// content and quiz explanations: a JSON array of blocks, each with a type,
// props, inline content and nested children.
//
// Older records hold plain text instead. Normalize upgrades such a value to a
// single paragraph block so every reader sees the block format.
package richtext

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	BlockParagraph = "paragraph"
	BlockImage     = "image"
	InlineText     = "text"
	InlineLink     = "link"
)

type Inline struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Href    string         `json:"href,omitempty"`
	Styles  map[string]any `json:"styles"`
	Content []Inline       `json:"content,omitempty"`
}

type Block struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Props    map[string]any `json:"props"`
	Content  []Inline       `json:"content"`
	Children []Block        `json:"children"`
}

type Document []Block

// Paragraph returns a paragraph block with a fresh id holding text as one
// unstyled run. Empty text yields a paragraph with no content.
func Paragraph(text string) Block {
	content := []Inline{}
	if text != "" {
		content = append(content, Inline{Type: InlineText, Text: text, Styles: map[string]any{}})
	}
	return Block{
		ID:       uuid.NewString(),
		Type:     BlockParagraph,
		Props:    map[string]any{},
		Content:  content,
		Children: []Block{},
	}
}

// Normalize prepares a stored value for the editor. The value is trimmed; an
// empty value stays empty, a JSON array is returned as is, and anything else
// becomes exactly one paragraph block containing the trimmed text.
func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if isJSONArray(trimmed) {
		return trimmed
	}

	out, err := Document{Paragraph(trimmed)}.Marshal()
	if err != nil {
		return trimmed
	}
	return out
}

func isJSONArray(s string) bool {
	if !strings.HasPrefix(s, "[") {
		return false
	}
	var probe []json.RawMessage
	return json.Unmarshal([]byte(s), &probe) == nil
}

// Parse normalizes value and decodes it. An empty value yields an empty
// document.
func Parse(value string) (Document, error) {
	norm := Normalize(value)
	if norm == "" {
		return Document{}, nil
	}
	var doc Document
	if err := json.Unmarshal([]byte(norm), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// FromPlainText builds a document with one paragraph per line.
func FromPlainText(text string) Document {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return Document{}
	}
	lines := strings.Split(text, "\n")
	doc := make(Document, 0, len(lines))
	for _, line := range lines {
		doc = append(doc, Paragraph(line))
	}
	return doc
}

// Marshal serializes d to its wire form.
func (d Document) Marshal() (string, error) {
	if d == nil {
		d = Document{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(b), nil
}

// PlainText flattens d: one line per block, children after their parent.
func (d Document) PlainText() string {
	var lines []string
	var walk func(blocks []Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			lines = append(lines, inlineText(b.Content))
			walk(b.Children)
		}
	}
	walk(d)
	return strings.Join(lines, "\n")
}

func inlineText(items []Inline) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.Text)
		sb.WriteString(inlineText(it.Content))
	}
	return sb.String()
}

// Text returns the readable text of a stored value. Values that cannot be
// decoded are returned unchanged.
func Text(value string) string {
	doc, err := Parse(value)
	if err != nil {
		return value
	}
	return doc.PlainText()
}

// Image returns an image block pointing at url.
func Image(url string) Block {
	return Block{
		ID:       uuid.NewString(),
		Type:     BlockImage,
		Props:    map[string]any{"url": url},
		Content:  []Inline{},
		Children: []Block{},
	}
}
