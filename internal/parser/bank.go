package parser

import (
	"context"

	"github.com/deadroot/deadroot/domain"
	"github.com/deadroot/deadroot/internal/langs"
)

// LanguageParser describes a context-aware per-file parse returning a
// ParseResult. Neither tier type implements it: Bank.Parse calls the AST
// tier (ParseFile + ExtractModule) and RegexParser.Parse(path, source)
// directly. Both tiers return the same ParseResult type, so Bank's caller
// cannot tell which one ran.
type LanguageParser interface {
	Parse(ctx context.Context, path string, source []byte) *domain.ParseResult
}

// Bank is the ParserBank of spec.md §4.3: one parser per supported
// language, dispatched by LanguageRouter's tag.
type Bank struct{}

// NewBank creates a ParserBank.
func NewBank() *Bank { return &Bank{} }

// Parse dispatches to the AST tier for the JavaScript family (including Vue)
// and to the regex tier for every other language. It never panics: a
// recovered panic or parse failure in the AST tier falls through to the
// regex tier, matching spec.md's "On parse failure, fall through to the
// regex tier rather than abort."
func (b *Bank) Parse(ctx context.Context, path string, lang domain.Language, source []byte) *domain.ParseResult {
	if lang == domain.LanguageTypes || lang == domain.LanguageUnknown {
		return &domain.ParseResult{}
	}
	if langs.IsASTTier(lang) {
		if res := b.parseAST(ctx, path, lang, source); res != nil {
			return res
		}
	}
	return NewRegexParser(lang).Parse(path, source)
}

func (b *Bank) parseAST(ctx context.Context, path string, lang domain.Language, source []byte) (result *domain.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	if lang == domain.LanguageVue {
		return parseVueWithTimeout(ctx, path, source)
	}

	done := make(chan *domain.ParseResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- nil
			}
		}()
		var p *Parser
		if lang == domain.LanguageTypeScript {
			p = NewTypeScriptParser()
		} else {
			p = NewParser()
		}
		defer p.Close()

		ast, err := p.ParseFile(path, source)
		if err != nil || ast == nil {
			done <- nil
			return
		}
		done <- ExtractModule(ast, source, 0)
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return &domain.ParseResult{Metadata: domain.ParseMetadata{ParseError: "timeout"}}
	}
}
