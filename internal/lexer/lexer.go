// Package lexer splits markdown source into a flat token stream.
//
// The lexer knows nothing about block structure. Block markers such as
// checkboxes, list bullets and front matter delimiters are claimed later by
// the block processor; the lexer only fills the text between them.
package lexer

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/gerunddev/granite/internal/ast"
)

// tokenizer performs a single pass over src[pos:end].
type tokenizer struct {
	src    string
	tokens []ast.Token
	pos    int
	start  int
	end    int
}

// Tokenize returns tokens that are contiguous, non-overlapping and cover
// exactly [start, end) of src.
func Tokenize(src string, start, end int) []ast.Token {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return nil
	}
	t := &tokenizer{
		src:    src,
		tokens: make([]ast.Token, 0, (end-start)/4+1),
		pos:    start,
		start:  start,
		end:    end,
	}
	for t.pos < t.end {
		t.next()
	}
	return t.tokens
}

func (t *tokenizer) emit(kind ast.Kind, start, end int) {
	t.tokens = append(t.tokens, ast.Token{Kind: kind, Start: start, End: end})
	t.pos = end
}

func (t *tokenizer) next() {
	c := t.src[t.pos]
	switch c {
	case '\n':
		t.emit(ast.EOL, t.pos, t.pos+1)
	case '\r':
		if t.pos+1 < t.end && t.src[t.pos+1] == '\n' {
			t.emit(ast.EOL, t.pos, t.pos+2)
		} else {
			t.emit(ast.EOL, t.pos, t.pos+1)
		}
	case ' ', '\t':
		i := t.pos
		for i < t.end && (t.src[i] == ' ' || t.src[i] == '\t') {
			i++
		}
		t.emit(ast.WhiteSpace, t.pos, i)
	case '[':
		t.emit(ast.LBracket, t.pos, t.pos+1)
	case ']':
		t.emit(ast.RBracket, t.pos, t.pos+1)
	case '(':
		t.emit(ast.LParen, t.pos, t.pos+1)
	case ')':
		t.emit(ast.RParen, t.pos, t.pos+1)
	case '!':
		t.emit(ast.ExclamationMark, t.pos, t.pos+1)
	case '<':
		if !t.tryAutolink() {
			t.emit(ast.LT, t.pos, t.pos+1)
		}
	case '>':
		t.emit(ast.GT, t.pos, t.pos+1)
	case '*', '_':
		t.emit(ast.EmphMarker, t.pos, t.pos+1)
	case '~':
		t.emit(ast.Tilde, t.pos, t.pos+1)
	case '`':
		i := t.pos
		for i < t.end && t.src[i] == '`' {
			i++
		}
		t.emit(ast.Backtick, t.pos, i)
	case '\'':
		t.emit(ast.SingleQuote, t.pos, t.pos+1)
	case '"':
		t.emit(ast.DoubleQuote, t.pos, t.pos+1)
	default:
		if t.atWordStart() && t.tryBareURL() {
			return
		}
		t.text()
	}
}

// isSpecial reports whether c starts a token of its own.
func isSpecial(c byte) bool {
	switch c {
	case '\n', '\r', ' ', '\t', '[', ']', '(', ')', '!', '<', '>', '*', '_', '~', '`', '\'', '"':
		return true
	}
	return false
}

// text consumes a run of ordinary characters. A backslash escape keeps the
// escaped punctuation inside the run.
func (t *tokenizer) text() {
	i := t.pos
	for i < t.end {
		c := t.src[i]
		if c == '\\' {
			if i+1 < t.end && util.IsPunct(t.src[i+1]) {
				i += 2
			} else {
				i++
			}
			continue
		}
		if isSpecial(c) {
			break
		}
		i++
	}
	t.emit(ast.Text, t.pos, i)
}

func (t *tokenizer) atWordStart() bool {
	if t.pos == t.start {
		return true
	}
	switch t.src[t.pos-1] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// tryBareURL claims a GFM extended autolink (http://, https:// or www.).
func (t *tokenizer) tryBareURL() bool {
	rest := t.src[t.pos:t.end]
	var prefix int
	switch {
	case strings.HasPrefix(rest, "https://"):
		prefix = len("https://")
	case strings.HasPrefix(rest, "http://"):
		prefix = len("http://")
	case strings.HasPrefix(rest, "www."):
		prefix = len("www.")
	default:
		return false
	}
	i := t.pos + prefix
	for i < t.end {
		c := t.src[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '<' {
			break
		}
		i++
	}
	i = trimURLTail(t.src, t.pos+prefix, i)
	if i <= t.pos+prefix {
		return false
	}
	t.emit(ast.GFMAutolink, t.pos, i)
	return true
}

// trimURLTail drops trailing punctuation and unbalanced closing parens.
func trimURLTail(src string, from, to int) int {
	for to > from {
		c := src[to-1]
		switch c {
		case '?', '!', '.', ',', ':', '*', '_', '~', '\'', '"':
			to--
			continue
		case ')':
			if strings.Count(src[from:to], "(") < strings.Count(src[from:to], ")") {
				to--
				continue
			}
		}
		break
	}
	return to
}

// tryAutolink claims <scheme:address> or <user@host> as LT, AUTOLINK_TOKEN
// and GT.
func (t *tokenizer) tryAutolink() bool {
	open := t.pos
	i := open + 1
	for i < t.end && t.src[i] != '>' {
		c := t.src[i]
		if c == '<' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return false
		}
		i++
	}
	if i >= t.end {
		return false
	}
	addr := t.src[open+1 : i]
	if !isURIAutolink(addr) && !isEmailAutolink(addr) {
		return false
	}
	t.emit(ast.LT, open, open+1)
	t.emit(ast.AutolinkToken, open+1, i)
	t.emit(ast.GT, i, i+1)
	return true
}

func isURIAutolink(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 2 || colon > 32 {
		return false
	}
	for i := 0; i < colon; i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '.' || c == '-'):
		default:
			return false
		}
	}
	return true
}

func isEmailAutolink(s string) bool {
	at := strings.IndexByte(s, '@')
	if at < 1 || at == len(s)-1 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == at {
			continue
		}
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_' || c == '+':
			if i > at && c == '+' {
				return false
			}
		default:
			return false
		}
	}
	return true
}
