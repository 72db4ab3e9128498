package parser

import "strings"

// TokenSource is a pull-based stream of markup tokens. The tree constructor
// only depends on this interface, so tests can feed it a scripted sequence.
type TokenSource interface {
	Next() Token
}

// Tokenizer is a lexer over an owned markup buffer. It knows nothing about
// insertion modes or tree semantics; it only recognizes tag syntax. It is
// total: malformed constructs degrade to character data instead of stopping
// the stream.
type Tokenizer struct {
	input []rune
	pos   int
}

// NewTokenizer creates a tokenizer over input with the read cursor at the
// start. The full markup is supplied up front; there is no incremental feed.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: []rune(input)}
}

// Next returns the next token, or an end-of-file token once the input is
// consumed. After end of file it keeps returning end of file.
func (t *Tokenizer) Next() Token {
	if t.pos >= len(t.input) {
		return endOfFileToken()
	}

	r := t.input[t.pos]
	if r == '<' {
		if tok, ok := t.scanMarkup(); ok {
			return tok
		}
		// Stray or unterminated construct: the '<' is literal text.
	}

	t.pos++
	return charToken(r)
}

// scanMarkup lexes a tag or doctype starting at the current '<'. It reports
// false without moving the cursor when the construct is not well formed, in
// which case the caller emits the '<' as character data.
func (t *Tokenizer) scanMarkup() (Token, bool) {
	end := t.indexFrom('>', t.pos+1)
	if end < 0 {
		return Token{}, false
	}

	inner := string(t.input[t.pos+1 : end])
	if inner == "" {
		return Token{}, false
	}

	switch inner[0] {
	case '!':
		// "<!...>" covers the doctype declaration; its contents carry no
		// data in this subset.
		t.pos = end + 1
		return docTypeToken(), true
	case '/':
		name := strings.ToLower(strings.TrimSpace(inner[1:]))
		if !isTagName(name) {
			return Token{}, false
		}
		t.pos = end + 1
		return endTagToken(name), true
	}

	selfClosing := strings.HasSuffix(inner, "/")
	name := inner
	if selfClosing {
		name = name[:len(name)-1]
	}
	// Attributes are not parsed; everything after the name is skipped.
	if i := strings.IndexAny(name, " \t\n\f\r/"); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	if !isTagName(name) {
		return Token{}, false
	}
	t.pos = end + 1
	return startTagToken(name, selfClosing), true
}

func (t *Tokenizer) indexFrom(r rune, from int) int {
	for i := from; i < len(t.input); i++ {
		if t.input[i] == r {
			return i
		}
	}
	return -1
}

// isTagName accepts lower-cased names that start with a letter, optionally
// followed by letters and digits. Anything else is not tag syntax and stays
// character data.
func isTagName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if i == 0 {
			if !isLower {
				return false
			}
			continue
		}
		if !isLower && !isDigit {
			return false
		}
	}
	return true
}
