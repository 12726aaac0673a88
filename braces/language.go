package braces

import (
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language defines the interface for a supported C-family grammar.
type Language interface {
	// Name returns the language identifier (e.g., "c", "cpp").
	Name() string

	// Extensions returns file extensions for this language (e.g., [".c"]).
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language grammar.
	TreeSitterLang() *sitter.Language

	// MacrosQuery returns the tree-sitter query capturing macro names
	// introduced by #define directives. Captures must be named @name.
	MacrosQuery() string
}

// registry holds all registered languages.
var registry = make(map[string]Language)

// Register adds a language to the registry.
// This is typically called from init() functions in language implementation files.
func Register(lang Language) {
	registry[lang.Name()] = lang
}

// Get returns a language by name, or nil if not found.
func Get(name string) Language {
	return registry[name]
}

// List returns all registered language names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByExtension finds a language by file extension.
func ByExtension(ext string) Language {
	ext = strings.ToLower(ext)
	for _, lang := range registry {
		for _, e := range lang.Extensions() {
			if e == ext {
				return lang
			}
		}
	}
	return nil
}

// ForPath picks the language for a file path. A non-empty forced name
// wins over the extension.
func ForPath(path, forced string) (Language, error) {
	if forced != "" {
		lang := Get(forced)
		if lang == nil {
			return nil, unknownLanguage(forced)
		}
		return lang, nil
	}
	lang := ByExtension(filepath.Ext(path))
	if lang == nil {
		return nil, unknownLanguage(filepath.Ext(path))
	}
	return lang, nil
}
