package braces

import (
	_ "embed"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

//go:embed queries/cpp/macros.scm
var cppMacrosQuery string

// Cpp implements the Language interface for C++ source code.
// Headers ending in .h are routed here since the C++ grammar accepts
// nearly all C.
type Cpp struct{}

func init() {
	Register(&Cpp{})
}

func (l *Cpp) Name() string {
	return "cpp"
}

func (l *Cpp) Extensions() []string {
	return []string{".cc", ".cpp", ".cxx", ".c++", ".h", ".hh", ".hpp", ".hxx", ".h++", ".ipp", ".inl"}
}

func (l *Cpp) TreeSitterLang() *sitter.Language {
	return cpp.GetLanguage()
}

func (l *Cpp) MacrosQuery() string {
	return cppMacrosQuery
}
