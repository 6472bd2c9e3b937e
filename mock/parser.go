package mock

import "github.com/fwojciec/swi"

var _ swi.Parser = (*Parser)(nil)

// Parser is a mock implementation of swi.Parser.
type Parser struct {
	ParseFn func(markup string) (swi.Node, error)
}

func (p *Parser) Parse(markup string) (swi.Node, error) {
	return p.ParseFn(markup)
}
