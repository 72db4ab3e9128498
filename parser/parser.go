package parser

import "github.com/minibrowse/minibrowse/parser/dom"

// Parser ties a tokenizer to a tree constructor. Each instance owns its
// tokenizer cursor, root, mode, and open-elements stack exclusively for one
// parse; nothing is shared across parses.
type Parser struct {
	Tokenizer       *Tokenizer
	TreeConstructor *TreeConstructor
}

// NewParser creates a parser over a markup buffer.
func NewParser(markup string) *Parser {
	tokenizer := NewTokenizer(markup)
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: NewTreeConstructor(tokenizer),
	}
}

// ConstructTree runs the parse to end of file and returns the document root.
func (p *Parser) ConstructTree() (*dom.Node, error) {
	return p.TreeConstructor.ConstructTree()
}

// Parse is the one-shot convenience over NewParser + ConstructTree.
func Parse(markup string) (*dom.Node, error) {
	return NewParser(markup).ConstructTree()
}
