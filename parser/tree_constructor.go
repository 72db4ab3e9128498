package parser

import (
	"github.com/pkg/errors"

	"github.com/minibrowse/minibrowse/parser/dom"
)

// ErrParserInvariant is returned when the tree constructor detects a broken
// internal assumption, such as a pop that does not match the stack top. It
// indicates a constructor bug, never malformed input.
var ErrParserInvariant = errors.New("tree constructor invariant violated")

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	afterHead
	inBody
	afterBody
	afterAfterBody
)

// dispatchResult tells the construction loop what to do with the current
// token after a mode handler ran.
type dispatchResult uint

const (
	// consumeToken advances to the next token.
	consumeToken dispatchResult = iota
	// reprocessToken re-dispatches the same token under the new mode.
	reprocessToken
	// stopParsing ends construction and returns the tree.
	stopParsing
)

type insertionModeHandler func(Token) (dispatchResult, error)

// TreeConstructor consumes a token stream through the insertion-mode state
// machine and builds the document tree. A single instance owns the root, the
// mode, and the stack of open elements for the duration of one parse.
type TreeConstructor struct {
	tokens       TokenSource
	root         *dom.Node
	mode         insertionMode
	openElements []*dom.Node
	mappings     map[insertionMode]insertionModeHandler
}

// NewTreeConstructor creates a tree constructor over a token source.
func NewTreeConstructor(tokens TokenSource) *TreeConstructor {
	c := &TreeConstructor{
		tokens: tokens,
		root:   dom.NewDocumentNode(),
		mode:   initial,
	}
	c.createMappings()
	return c
}

func (c *TreeConstructor) createMappings() {
	c.mappings = map[insertionMode]insertionModeHandler{
		initial:        c.initialModeHandler,
		beforeHTML:     c.beforeHTMLModeHandler,
		beforeHead:     c.beforeHeadModeHandler,
		inHead:         c.inHeadModeHandler,
		afterHead:      c.afterHeadModeHandler,
		inBody:         c.inBodyModeHandler,
		afterBody:      c.afterBodyModeHandler,
		afterAfterBody: c.afterAfterBodyModeHandler,
	}
}

// ConstructTree drives the token source to end of file and returns the
// document root. Parse errors in the input are recovered per mode and never
// surface; unsupported tag names and internal invariant violations abort the
// parse with no tree.
func (c *TreeConstructor) ConstructTree() (*dom.Node, error) {
	token := c.tokens.Next()
	for {
		handler, ok := c.mappings[c.mode]
		if !ok {
			return nil, errors.Wrapf(ErrParserInvariant, "no handler for insertion mode %d", c.mode)
		}
		result, err := handler(token)
		if err != nil {
			return nil, err
		}
		switch result {
		case stopParsing:
			return c.root, nil
		case consumeToken:
			token = c.tokens.Next()
		case reprocessToken:
			// Same token, new mode.
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *TreeConstructor) initialModeHandler(t Token) (dispatchResult, error) {
	c.mode = beforeHTML
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *TreeConstructor) beforeHTMLModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case DocTypeToken:
		return consumeToken, nil
	case CharacterToken:
		if isParserWhitespace(t.Char) {
			return consumeToken, nil
		}
	case StartTagToken:
		if t.TagName == "html" {
			if err := c.insertElement(t.TagName); err != nil {
				return 0, err
			}
			c.mode = beforeHead
			return consumeToken, nil
		}
	case EndTagToken:
		// Any other end tag: parse error, ignore the token.
		return consumeToken, nil
	case EndOfFileToken:
		return stopParsing, nil
	}

	if err := c.insertElement("html"); err != nil {
		return 0, err
	}
	c.mode = beforeHead
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *TreeConstructor) beforeHeadModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case CharacterToken:
		if isParserWhitespace(t.Char) {
			return consumeToken, nil
		}
	case StartTagToken:
		if t.TagName == "head" {
			if err := c.insertElement(t.TagName); err != nil {
				return 0, err
			}
			c.mode = inHead
			return consumeToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	if err := c.insertElement("head"); err != nil {
		return 0, err
	}
	c.mode = inHead
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *TreeConstructor) inHeadModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case EndTagToken:
		if t.TagName == "head" {
			if !c.popCurrentNode(dom.Head) {
				return 0, errors.Wrap(ErrParserInvariant, "head is not the current node")
			}
			c.mode = afterHead
			return consumeToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	// Anything else closes the head eagerly.
	if !c.popCurrentNode(dom.Head) {
		return 0, errors.Wrap(ErrParserInvariant, "head is not the current node")
	}
	c.mode = afterHead
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *TreeConstructor) afterHeadModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case StartTagToken:
		if t.TagName == "body" {
			if err := c.insertElement(t.TagName); err != nil {
				return 0, err
			}
			c.mode = inBody
			return consumeToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	if err := c.insertElement("body"); err != nil {
		return 0, err
	}
	c.mode = inBody
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *TreeConstructor) inBodyModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case CharacterToken:
		c.insertChar(t.Char)
		return consumeToken, nil
	case EndTagToken:
		switch t.TagName {
		case "body":
			if !c.containInStack(dom.Body) {
				// Parse error, ignore the token.
				return consumeToken, nil
			}
			if err := c.popUntil(dom.Body); err != nil {
				return 0, err
			}
			c.mode = afterBody
			return consumeToken, nil
		case "html":
			if !c.popCurrentNode(dom.Body) {
				// Parse error, ignore the token.
				return consumeToken, nil
			}
			if !c.popCurrentNode(dom.HTML) {
				return 0, errors.Wrap(ErrParserInvariant, "html is not the current node")
			}
			c.mode = afterBody
			return reprocessToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	// Start tags and other end tags have no effect in this subset.
	return consumeToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *TreeConstructor) afterBodyModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case EndTagToken:
		if t.TagName == "html" {
			// The html element is still open when the body was closed by an
			// explicit </body>; close it here so the stack is empty past
			// this point.
			if c.containInStack(dom.HTML) {
				if err := c.popUntil(dom.HTML); err != nil {
					return 0, err
				}
			}
			c.mode = afterAfterBody
			return consumeToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	c.mode = inBody
	return reprocessToken, nil
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *TreeConstructor) afterAfterBodyModeHandler(t Token) (dispatchResult, error) {
	switch t.Type {
	case EndTagToken:
		if t.TagName == "html" {
			return consumeToken, nil
		}
	case EndOfFileToken:
		return stopParsing, nil
	}

	c.mode = inBody
	return reprocessToken, nil
}

// currentNode is the top of the stack of open elements, or the document root
// when nothing is open.
func (c *TreeConstructor) currentNode() *dom.Node {
	if len(c.openElements) == 0 {
		return c.root
	}
	return c.openElements[len(c.openElements)-1]
}

// insertElement creates an element for tag, appends it under the current
// node, and pushes it onto the stack of open elements. Tag names outside the
// recognized set are a hard failure.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *TreeConstructor) insertElement(tag string) error {
	node, err := dom.NewElementNodeForTag(tag)
	if err != nil {
		return err
	}
	c.currentNode().AppendChild(node)
	c.openElements = append(c.openElements, node)
	return nil
}

// insertChar accumulates character data. Consecutive characters coalesce
// into the text node that is already the current node; otherwise a new text
// node is created, appended, and pushed.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *TreeConstructor) insertChar(r rune) {
	current := c.currentNode()
	if current.Type == dom.TextNode {
		current.AppendData(r)
		return
	}

	node := dom.NewTextNode(string(r))
	current.AppendChild(node)
	c.openElements = append(c.openElements, node)
}

// popCurrentNode pops the stack top iff it is an element of the given kind
// and reports whether it did.
func (c *TreeConstructor) popCurrentNode(kind dom.ElementKind) bool {
	if len(c.openElements) == 0 {
		return false
	}
	current := c.openElements[len(c.openElements)-1]
	if current.Type != dom.ElementNode || current.Kind != kind {
		return false
	}
	c.openElements = c.openElements[:len(c.openElements)-1]
	return true
}

// popUntil pops nodes until an element of the given kind has been popped.
// The kind must be present in the stack.
func (c *TreeConstructor) popUntil(kind dom.ElementKind) error {
	if !c.containInStack(kind) {
		return errors.Wrapf(ErrParserInvariant, "pop until <%s>: not in the stack of open elements", kind.TagName())
	}

	for len(c.openElements) > 0 {
		current := c.openElements[len(c.openElements)-1]
		c.openElements = c.openElements[:len(c.openElements)-1]
		if current.Type == dom.ElementNode && current.Kind == kind {
			return nil
		}
	}
	return nil
}

// containInStack reports whether the stack of open elements holds an element
// of the given kind.
func (c *TreeConstructor) containInStack(kind dom.ElementKind) bool {
	for _, n := range c.openElements {
		if n.Type == dom.ElementNode && n.Kind == kind {
			return true
		}
	}
	return false
}
