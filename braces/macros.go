package braces

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// macroNames returns every macro name the unit defines with #define,
// plus the names given on the command line.
func (p *parser) macroNames(root *sitter.Node, source []byte, defines []string) (map[string]struct{}, error) {
	if p.macros == nil {
		q, err := newQuery(p.lang.MacrosQuery(), p.lang)
		if err != nil {
			return nil, err
		}
		p.macros = q
	}

	names := make(map[string]struct{})
	for _, c := range p.macros.run(root) {
		if c.Name != "name" {
			continue
		}
		names[c.Node.Content(source)] = struct{}{}
	}
	for _, d := range defines {
		if name := defineName(d); name != "" {
			names[name] = struct{}{}
		}
	}
	return names, nil
}

// defineName extracts the macro name from a -D style definition:
// "-DFOO", "FOO=1" and "FOO(x)=x" all yield "FOO".
func defineName(def string) string {
	def = strings.TrimSpace(def)
	def = strings.TrimPrefix(def, "-D")
	if i := strings.IndexAny(def, "=("); i >= 0 {
		def = def[:i]
	}
	return strings.TrimSpace(def)
}
