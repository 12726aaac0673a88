// Package braces inserts braces around the single-statement bodies of
// if, while, for, range-for and do-while statements in C and C++ sources.
//
// Sources are parsed with tree-sitter. Every insertion is computed against
// the original text and applied in one pass, so the rest of the file,
// comments and preprocessor lines included, comes out byte for byte.
package braces

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/arjunmahishi/addbraces/internal/logging"
)

// Rewrite braces the control statements of one compilation unit.
func Rewrite(ctx context.Context, source []byte, opts RewriteOptions) (Result, error) {
	if opts.Language == "" {
		opts.Language = "cpp"
	}
	language := Get(opts.Language)
	if language == nil {
		return Result{}, unknownLanguage(opts.Language)
	}
	return newParser(language).rewrite(ctx, source, opts)
}

// RewriteFile reads and rewrites a file. The file is not modified.
func RewriteFile(ctx context.Context, path string, opts RewriteOptions) (Result, error) {
	language, err := ForPath(path, opts.Language)
	if err != nil {
		return Result{}, err
	}
	opts, err = opts.rewriteDefaults()
	if err != nil {
		return Result{}, err
	}

	p := newParser(language)
	tree, source, err := p.parseFile(ctx, path)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	return p.rewriteTree(ctx, tree.RootNode(), source, opts)
}

// rewrite parses source and runs the engine over the resulting tree.
func (p *parser) rewrite(ctx context.Context, source []byte, opts RewriteOptions) (Result, error) {
	opts, err := opts.rewriteDefaults()
	if err != nil {
		return Result{}, err
	}

	tree, err := p.parse(ctx, source)
	if err != nil {
		return Result{}, err
	}
	defer tree.Close()

	return p.rewriteTree(ctx, tree.RootNode(), source, opts)
}

func (p *parser) rewriteTree(ctx context.Context, root *sitter.Node, source []byte, opts RewriteOptions) (Result, error) {
	macros, err := p.macroNames(root, source, opts.Defines)
	if err != nil {
		return Result{}, err
	}

	buf := newRewriteBuffer(source)
	pl := &planner{
		sm:     NewSourceMap(source, macros),
		style:  opts.Style,
		buf:    buf,
		logger: logging.FromContext(ctx),
	}
	pl.walk(root)

	out, changed, err := buf.apply()
	if err != nil {
		return Result{}, fmt.Errorf("apply edits: %w", err)
	}

	return Result{
		Output:  out,
		Changed: changed,
		Wrapped: pl.wrapped,
		Skipped: pl.skipped,
		Edits:   buf.sorted(),
	}, nil
}
