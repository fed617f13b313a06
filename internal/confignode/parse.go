package confignode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// SyntaxError reports a malformed document
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a whole document and returns its root node
func Parse(data []byte) (*Node, error) {
	return ParseReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
}

// ParseFile reads and parses the file at path
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ParseReader parses a document from r
func ParseReader(r io.Reader) (*Node, error) {
	p := &parser{root: &Node{}}
	p.stack = []*Node{p.root}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if err := p.line(scanner.Text(), line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	if len(p.stack) > 1 {
		open := p.stack[len(p.stack)-1]
		return nil, &SyntaxError{Line: open.Line, Msg: fmt.Sprintf("unclosed node %q", open.Name)}
	}

	return p.root, nil
}

type parser struct {
	root    *Node
	stack   []*Node
	pending string // node name waiting for its opening brace
	pendAt  int
}

func (p *parser) current() *Node {
	return p.stack[len(p.stack)-1]
}

func (p *parser) line(text string, line int) error {
	if i := strings.Index(text, "//"); i >= 0 {
		text = text[:i]
	}

	rest := strings.TrimSpace(text)
	for rest != "" {
		i := strings.IndexAny(rest, "{}")
		if i < 0 {
			p.statement(rest, line)
			return nil
		}

		p.statement(strings.TrimSpace(rest[:i]), line)

		if rest[i] == '{' {
			name, at := p.pending, p.pendAt
			if at == 0 {
				at = line
			}
			p.pending, p.pendAt = "", 0
			p.stack = append(p.stack, p.current().addChild(name, at))
		} else {
			if len(p.stack) == 1 {
				return &SyntaxError{Line: line, Msg: "unexpected '}'"}
			}
			p.pending, p.pendAt = "", 0
			p.stack = p.stack[:len(p.stack)-1]
		}

		rest = strings.TrimSpace(rest[i+1:])
	}
	return nil
}

// statement handles text found between braces: a key/value pair or a node name
func (p *parser) statement(text string, line int) {
	if text == "" {
		return
	}

	key, value, ok := strings.Cut(text, "=")
	if !ok {
		p.pending, p.pendAt = text, line
		return
	}

	p.current().addValue(strings.TrimSpace(key), strings.TrimSpace(value), line)
}
