package inline

import (
	"unicode"
	"unicode/utf8"

	"github.com/gerunddev/granite/internal/ast"
)

// EmphStrong pairs '*' and '_' delimiter runs into EMPH and STRONG spans
// following the CommonMark delimiter algorithm, including the flanking
// rules and the rule of three.
type EmphStrong struct{}

type delimiter struct {
	char     byte
	idx      []int // token indices of the run
	lo, hi   int   // unused part of the run is idx[lo:hi]
	orig     int
	canOpen  bool
	canClose bool
	active   bool
}

func (d *delimiter) count() int { return d.hi - d.lo }

func (EmphStrong) Parse(t *Tokens, g Group) Result {
	var b builder
	delims := collectDelimiters(t, g)

	for c := 0; c < len(delims); c++ {
		closer := delims[c]
		if !closer.canClose || !closer.active {
			continue
		}
		for closer.count() > 0 {
			o := findOpener(delims, c)
			if o < 0 {
				break
			}
			opener := delims[o]
			use := 1
			if opener.count() >= 2 && closer.count() >= 2 {
				use = 2
			}
			kind := ast.Emph
			if use == 2 {
				kind = ast.Strong
			}
			from := opener.idx[opener.hi-use]
			to := closer.idx[closer.lo+use-1] + 1
			b.span(kind, from, to)
			opener.hi -= use
			closer.lo += use
			for k := o + 1; k < c; k++ {
				delims[k].active = false
			}
			if opener.count() == 0 {
				opener.active = false
			}
		}
		if closer.count() == 0 || !closer.canOpen {
			closer.active = false
		}
	}

	for _, i := range g {
		b.keep(i)
	}
	return b.result()
}

func findOpener(delims []*delimiter, c int) int {
	closer := delims[c]
	for o := c - 1; o >= 0; o-- {
		d := delims[o]
		if !d.active || !d.canOpen || d.char != closer.char || d.count() == 0 {
			continue
		}
		if (d.canClose || closer.canOpen) && (d.orig+closer.orig)%3 == 0 &&
			!(d.orig%3 == 0 && closer.orig%3 == 0) {
			continue
		}
		return o
	}
	return -1
}

func collectDelimiters(t *Tokens, g Group) []*delimiter {
	var delims []*delimiter
	for p := 0; p < len(g); {
		i := g[p]
		if t.Kind(i) != ast.EmphMarker {
			p++
			continue
		}
		ch := t.Text(i)[0]
		d := &delimiter{char: ch, idx: []int{i}, active: true}
		p++
		for p < len(g) && g[p] == g[p-1]+1 && t.Kind(g[p]) == ast.EmphMarker && t.Text(g[p])[0] == ch {
			d.idx = append(d.idx, g[p])
			p++
		}
		d.hi = len(d.idx)
		d.orig = len(d.idx)

		before := runeBefore(t, d.idx[0])
		after := runeAfter(t, d.idx[len(d.idx)-1])
		left := !isSpace(after) && (!isPunct(after) || isSpace(before) || isPunct(before))
		right := !isSpace(before) && (!isPunct(before) || isSpace(after) || isPunct(after))
		if ch == '*' {
			d.canOpen, d.canClose = left, right
		} else {
			d.canOpen = left && (!right || isPunct(before))
			d.canClose = right && (!left || isPunct(after))
		}
		delims = append(delims, d)
	}
	return delims
}

// runeBefore returns the character preceding token i, or a space at the
// start of the inline context or of a line.
func runeBefore(t *Tokens, i int) rune {
	if i == 0 {
		return ' '
	}
	switch t.Kind(i - 1) {
	case ast.EOL, ast.WhiteSpace, ast.BlockQuoteMarker:
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(t.src[:t.Token(i).Start])
	return r
}

func runeAfter(t *Tokens, i int) rune {
	if i+1 >= t.Len() {
		return ' '
	}
	switch t.Kind(i + 1) {
	case ast.EOL, ast.WhiteSpace:
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(t.src[t.Token(i).End:])
	return r
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
