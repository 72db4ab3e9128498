package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minibrowse/minibrowse/parser/dom"
)

// scriptedTokens feeds the tree constructor a fixed token sequence so mode
// behavior can be tested without a real tokenizer.
type scriptedTokens struct {
	tokens []Token
	pos    int
}

func (s *scriptedTokens) Next() Token {
	if s.pos >= len(s.tokens) {
		return endOfFileToken()
	}
	t := s.tokens[s.pos]
	s.pos++
	return t
}

// skeleton builds the expected Document -> html -> (head, body) tree, with
// optional text inside the body.
func skeleton(bodyText string) *dom.Node {
	root := dom.NewDocumentNode()
	html := root.AppendChild(dom.NewElementNode(dom.HTML))
	html.AppendChild(dom.NewElementNode(dom.Head))
	body := html.AppendChild(dom.NewElementNode(dom.Body))
	if bodyText != "" {
		body.AppendChild(dom.NewTextNode(bodyText))
	}
	return root
}

func TestConstructTreeEmptyInput(t *testing.T) {
	root, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, dom.DocumentNode, root.Type)
	assert.False(t, root.HasChildNodes())
}

func TestConstructTreeDocuments(t *testing.T) {
	tests := []struct {
		in       string
		expected *dom.Node
	}{
		{"<html></html>", skeleton("")},
		{"<html><head></head></html>", skeleton("")},
		{"<html><head></head><body></body></html>", skeleton("")},
		{"<!doctype html><html></html>", skeleton("")},
		{"<html><head></head><body>hey</body></html>", skeleton("hey")},
		// Missing structural elements are synthesized on the way to the text.
		{"<html>hi</html>", skeleton("hi")},
	}

	for _, tt := range tests {
		root, err := Parse(tt.in)
		require.NoError(t, err, "input: %s", tt.in)
		assert.True(t, dom.Isomorphic(tt.expected, root),
			"input: %s\nexpected:\n%s\ngot:\n%s", tt.in, tt.expected, root)
	}
}

// Whitespace and a doctype ahead of the first tag must not create nodes and
// must not change which structural elements get synthesized.
func TestConstructTreeLeadingWhitespaceIdempotence(t *testing.T) {
	prefixes := []string{"", " ", "\t\n\f\r ", "<!doctype html>", " \n<!doctype html>\n "}
	for _, prefix := range prefixes {
		root, err := Parse(prefix + "<html>\t\n<head></head><body></body></html>")
		require.NoError(t, err, "prefix: %q", prefix)
		assert.True(t, dom.Isomorphic(skeleton(""), root), "prefix: %q\ngot:\n%s", prefix, root)
	}
}

// Consecutive character tokens coalesce into a single text node.
func TestConstructTreeTextCoalescing(t *testing.T) {
	root, err := Parse("<html><head></head><body>ab</body></html>")
	require.NoError(t, err)

	body := root.FirstChild.FirstChild.NextSibling
	require.NotNil(t, body)
	require.Equal(t, dom.Body, body.Kind)

	text := body.FirstChild
	require.NotNil(t, text)
	assert.Equal(t, dom.TextNode, text.Type)
	assert.Equal(t, "ab", text.Data)
	assert.Nil(t, text.NextSibling, "expected one coalesced text node, found a sibling")
}

func TestConstructTreeDocumentOrder(t *testing.T) {
	root, err := Parse("<html><head></head><body></body></html>")
	require.NoError(t, err)

	html := root.FirstChild
	require.NotNil(t, html)
	assert.Equal(t, dom.HTML, html.Kind)
	assert.Same(t, html, root.LastChild)

	head := html.FirstChild
	require.NotNil(t, head)
	assert.Equal(t, dom.Head, head.Kind)

	body := head.NextSibling
	require.NotNil(t, body)
	assert.Equal(t, dom.Body, body.Kind)
	assert.Same(t, body, html.LastChild)
	assert.Same(t, head, body.PrevSibling)
	assert.Same(t, html, body.Parent)
}

// After a parse that reaches the after-after-body mode, every structural
// element has been popped back off the stack of open elements.
func TestConstructTreeStackDiscipline(t *testing.T) {
	inputs := []string{
		"<html><head></head><body></body></html>",
		"<html><head></head><body>hi</body></html>",
		"<html></html>",
	}
	for _, in := range inputs {
		c := NewTreeConstructor(NewTokenizer(in))
		_, err := c.ConstructTree()
		require.NoError(t, err, "input: %s", in)
		assert.Equal(t, afterAfterBody, c.mode, "input: %s", in)
		for _, kind := range []dom.ElementKind{dom.HTML, dom.Head, dom.Body} {
			assert.False(t, c.containInStack(kind), "input: %s, kind: %s", in, kind.TagName())
		}
	}
}

// Serializing a parsed document and re-parsing it reproduces an isomorphic
// tree.
func TestConstructTreeRoundTrip(t *testing.T) {
	first, err := Parse("<html><head></head><body></body></html>")
	require.NoError(t, err)

	second, err := Parse(first.Render())
	require.NoError(t, err)
	assert.True(t, dom.Isomorphic(first, second))
}

// A stray </body> with no body open is a parse error that gets ignored
// without changing state.
func TestInBodyIgnoresUnmatchedEndBody(t *testing.T) {
	c := NewTreeConstructor(&scriptedTokens{tokens: []Token{
		startTagToken("html", false),
		startTagToken("head", false),
		endTagToken("head"),
		startTagToken("body", false),
	}})
	root, err := c.ConstructTree()
	require.NoError(t, err)
	require.Equal(t, inBody, c.mode)

	res, err := c.inBodyModeHandler(endTagToken("body"))
	// The stack holds body, so this one closes it...
	require.NoError(t, err)
	assert.Equal(t, consumeToken, res)
	assert.Equal(t, afterBody, c.mode)

	// ...and a second one has nothing to close: ignored, no mode change.
	c.mode = inBody
	res, err = c.inBodyModeHandler(endTagToken("body"))
	require.NoError(t, err)
	assert.Equal(t, consumeToken, res)
	assert.Equal(t, inBody, c.mode)
	assert.NotNil(t, root)
}

// Start tags outside the structural set have no effect in the body.
func TestInBodyIgnoresOtherStartTags(t *testing.T) {
	root, err := Parse("<html><head></head><body><br/>ok</body></html>")
	require.NoError(t, err)
	assert.True(t, dom.Isomorphic(skeleton("ok"), root), "got:\n%s", root)
}

// After-body and after-after-body re-process anything that is not </html> or
// end of file back in the body.
func TestAfterBodyRevertsToInBody(t *testing.T) {
	root, err := Parse("<html><head></head><body>a</body>b</html>")
	require.NoError(t, err)

	body := root.FirstChild.FirstChild.NextSibling
	require.NotNil(t, body)
	text := body.FirstChild
	require.NotNil(t, text)
	assert.Equal(t, "a", text.Data)

	// "b" lands back in body context. The body itself is already closed, so
	// the still-open html element picks it up as a trailing text node.
	trailing := body.NextSibling
	require.NotNil(t, trailing)
	assert.Equal(t, dom.TextNode, trailing.Type)
	assert.Equal(t, "b", trailing.Data)
}

func TestInsertElementUnsupportedTagIsFatal(t *testing.T) {
	c := NewTreeConstructor(NewTokenizer(""))
	err := c.insertElement("div")
	require.ErrorIs(t, err, dom.ErrUnsupportedTag)
	assert.Contains(t, err.Error(), "div")
}

func TestPopUntilMissingKindIsInvariantViolation(t *testing.T) {
	c := NewTreeConstructor(NewTokenizer(""))
	require.NoError(t, c.insertElement("html"))
	err := c.popUntil(dom.Body)
	require.ErrorIs(t, err, ErrParserInvariant)
}

func TestPopCurrentNode(t *testing.T) {
	c := NewTreeConstructor(NewTokenizer(""))
	require.NoError(t, c.insertElement("html"))
	require.NoError(t, c.insertElement("head"))

	assert.False(t, c.popCurrentNode(dom.HTML), "head is on top, html must not pop")
	assert.True(t, c.popCurrentNode(dom.Head))
	assert.True(t, c.popCurrentNode(dom.HTML))
	assert.False(t, c.popCurrentNode(dom.HTML), "empty stack pops nothing")
}

// Each mode returns the tree as soon as end of file shows up.
func TestEveryModeStopsAtEOF(t *testing.T) {
	inputs := []string{
		"",
		"<html>",
		"<html><head>",
		"<html><head></head>",
		"<html><head></head><body>",
		"<html><head></head><body></body>",
		"<html><head></head><body></body></html>",
	}
	for _, in := range inputs {
		root, err := Parse(in)
		require.NoError(t, err, "input: %s", in)
		require.NotNil(t, root, "input: %s", in)
	}
}
