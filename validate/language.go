package validate

import (
	"path/filepath"
	"sort"
	"strings"
)

// DetectLanguage determines the language name from a file path, returning
// "" when the extension is not recognized. Only languages with a
// tree-sitter grammar in this package are reported.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py", ".pyw":
		return "python"
	case ".ts":
		return "typescript"
	case ".js", ".mjs":
		return "javascript"
	case ".tsx":
		return "tsx"
	case ".jsx":
		return "jsx"
	case ".sh", ".bash", ".zsh":
		return "bash"
	default:
		return ""
	}
}

// SupportedLanguages returns the canonical language names with syntax
// validation support, sorted.
func SupportedLanguages() []string {
	seen := map[string]bool{}
	for name := range languages {
		seen[name] = true
	}
	// Report canonical names only, not aliases.
	canonical := []string{"go", "python", "typescript", "javascript", "tsx", "jsx", "bash"}
	var out []string
	for _, name := range canonical {
		if seen[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
