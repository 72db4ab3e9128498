package parser

import "fmt"

type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	DocTypeToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "character"
	case StartTagToken:
		return "start tag"
	case EndTagToken:
		return "end tag"
	case DocTypeToken:
		return "doctype"
	case EndOfFileToken:
		return "end of file"
	}
	return "unknown"
}

// Token is an atomic lexical unit produced from markup text. Exactly one
// case is active, selected by Type.
type Token struct {
	Type TokenType
	// TagName is set for start and end tags, already lower-cased.
	TagName     string
	SelfClosing bool
	// Char is set for character tokens, one decoded rune per token.
	Char rune
}

func (t Token) String() string {
	switch t.Type {
	case CharacterToken:
		return fmt.Sprintf("character %q", t.Char)
	case StartTagToken:
		if t.SelfClosing {
			return fmt.Sprintf("start tag <%s/>", t.TagName)
		}
		return fmt.Sprintf("start tag <%s>", t.TagName)
	case EndTagToken:
		return fmt.Sprintf("end tag </%s>", t.TagName)
	}
	return t.Type.String()
}

func charToken(r rune) Token {
	return Token{Type: CharacterToken, Char: r}
}

func startTagToken(name string, selfClosing bool) Token {
	return Token{Type: StartTagToken, TagName: name, SelfClosing: selfClosing}
}

func endTagToken(name string) Token {
	return Token{Type: EndTagToken, TagName: name}
}

func docTypeToken() Token {
	return Token{Type: DocTypeToken}
}

func endOfFileToken() Token {
	return Token{Type: EndOfFileToken}
}

// isParserWhitespace reports whether r is one of the characters the
// before-html and before-head insertion modes ignore: tab, LF, FF, CR, space.
func isParserWhitespace(r rune) bool {
	switch r {
	case 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}
