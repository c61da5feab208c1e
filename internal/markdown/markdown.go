// Package markdown wires the lexer, the block processor and the inline chain
// into a parser for one markdown flavour.
package markdown

import (
	"github.com/gerunddev/granite/internal/ast"
	"github.com/gerunddev/granite/internal/block"
	"github.com/gerunddev/granite/internal/inline"
	"github.com/gerunddev/granite/internal/lexer"
)

// Options selects the extensions on top of CommonMark.
type Options struct {
	FrontMatter   bool
	Tables        bool
	WikiLinks     bool
	Strikethrough bool
	TaskLists     bool
}

// DefaultOptions enables every extension.
func DefaultOptions() Options {
	return Options{
		FrontMatter:   true,
		Tables:        true,
		WikiLinks:     true,
		Strikethrough: true,
		TaskLists:     true,
	}
}

// Flavour is the ordered provider and parser configuration, built once.
type Flavour struct {
	blocks  *block.Processor
	inlines *inline.Chain
}

// NewFlavour builds the provider chains for opts. Front matter is tried
// before the standard block providers and tables after them.
func NewFlavour(opts Options) *Flavour {
	var providers []block.Provider
	if opts.FrontMatter {
		providers = append(providers, block.FrontMatter{})
	}
	providers = append(providers,
		block.IndentedCode{},
		block.HorizontalRule{},
		block.CodeFence{},
		block.BlockQuote{},
		block.ListItem{TaskLists: opts.TaskLists},
		block.ATXHeading{},
		block.LinkDefinition{},
	)
	if opts.Tables {
		providers = append(providers, block.Table{})
	}

	parsers := []inline.Parser{inline.Autolink{}, inline.Backtick{}}
	if opts.WikiLinks {
		parsers = append(parsers, inline.WikiLink{})
	}
	parsers = append(parsers, inline.Image{}, inline.InlineLink{}, inline.ReferenceLink{})
	if opts.Strikethrough {
		parsers = append(parsers, inline.Strikethrough{})
	}
	parsers = append(parsers, inline.EmphStrong{})

	return &Flavour{
		blocks:  block.NewProcessor(providers...),
		inlines: inline.NewChain(parsers...),
	}
}

// BlockProviders returns the block provider chain in priority order.
func (f *Flavour) BlockProviders() []block.Provider {
	return f.blocks.Providers()
}

// InlineParsers returns the inline chain in execution order.
func (f *Flavour) InlineParsers() []inline.Parser {
	return f.inlines.Parsers()
}

// Parser turns source text into a generic parse tree. It holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	flavour *Flavour
}

// NewParser returns a parser for the flavour described by opts.
func NewParser(opts Options) *Parser {
	return &Parser{flavour: NewFlavour(opts)}
}

// Flavour returns the parser's configuration.
func (p *Parser) Flavour() *Flavour {
	return p.flavour
}

// Parse never fails: constructs that do not parse are left as text. The
// root of the returned tree spans all of src.
func (p *Parser) Parse(src string) *ast.Tree {
	b := ast.TreeBuilder{
		Tokenize: func(start, end int) []ast.Token {
			return lexer.Tokenize(src, start, end)
		},
		ParseInlines: func(tokens []ast.Token) []ast.InlineSpan {
			return p.flavour.inlines.Parse(src, tokens)
		},
	}
	return b.Build(src, p.flavour.blocks.Process(src))
}

var defaultParser = NewParser(DefaultOptions())

// Default returns the shared parser with every extension enabled.
func Default() *Parser {
	return defaultParser
}

// Parse parses src with the default parser.
func Parse(src string) *ast.Tree {
	return defaultParser.Parse(src)
}
