package validate

import (
	"context"
	"fmt"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/martinemde/refinery/genloop"
)

// languages maps language names to tree-sitter grammars.
var languages = map[string]func() unsafe.Pointer{
	"go":         tree_sitter_go.Language,
	"golang":     tree_sitter_go.Language,
	"python":     tree_sitter_python.Language,
	"py":         tree_sitter_python.Language,
	"typescript": tree_sitter_typescript.LanguageTypescript,
	"ts":         tree_sitter_typescript.LanguageTypescript,
	"javascript": tree_sitter_typescript.LanguageTypescript, // TypeScript parser handles JS
	"js":         tree_sitter_typescript.LanguageTypescript,
	"tsx":        tree_sitter_typescript.LanguageTSX,
	"jsx":        tree_sitter_typescript.LanguageTSX,
	"bash":       tree_sitter_bash.Language,
	"sh":         tree_sitter_bash.Language,
	"shell":      tree_sitter_bash.Language,
}

// Syntax validates candidate content by parsing it with tree-sitter and
// collecting ERROR and MISSING nodes as validation errors.
type Syntax struct {
	language    string
	lang        unsafe.Pointer
	stripFences bool
}

// SyntaxOption configures a Syntax validator.
type SyntaxOption func(*Syntax)

// WithFenceExtraction extracts the first markdown code fence from the
// candidate before parsing. LLM output often wraps code in ```lang fences
// even when asked not to.
func WithFenceExtraction() SyntaxOption {
	return func(s *Syntax) { s.stripFences = true }
}

// NewSyntax creates a syntax validator for the given language. The
// language name is case-insensitive and common aliases (py, ts, sh) are
// accepted.
func NewSyntax(language string, opts ...SyntaxOption) (*Syntax, error) {
	normalized := strings.ToLower(strings.TrimSpace(language))
	langFn, ok := languages[normalized]
	if !ok {
		return nil, fmt.Errorf("language not supported for syntax validation: %s (supported: %s)",
			language, strings.Join(SupportedLanguages(), ", "))
	}
	s := &Syntax{
		language: normalized,
		lang:     langFn(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Language returns the normalized language name.
func (s *Syntax) Language() string { return s.language }

// Validate implements genloop.Validator.
func (s *Syntax) Validate(_ context.Context, cand *genloop.Candidate) (*genloop.ValidationReport, error) {
	content := cand.Content
	if s.stripFences {
		content = ExtractFencedCode(content)
	}

	// Whitespace-only candidates parse trivially; report them valid.
	if strings.TrimSpace(content) == "" {
		return &genloop.ValidationReport{
			Valid: true,
			Metadata: map[string]interface{}{
				"language":     s.language,
				"parsed_bytes": 0,
			},
		}, nil
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(s.lang)); err != nil {
		return nil, fmt.Errorf("failed to set parser language: %w", err)
	}

	source := []byte(content)
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree for language %s", s.language)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parsed tree has no root node")
	}

	report := &genloop.ValidationReport{
		Valid: true,
		Metadata: map[string]interface{}{
			"language":     s.language,
			"parsed_bytes": len(source),
		},
	}
	if !root.HasError() {
		return report, nil
	}

	report.Valid = false
	report.Errors = findErrorNodes(root, source)
	return report, nil
}

// findErrorNodes walks the syntax tree collecting ERROR and MISSING nodes
// as positioned error strings. Rows and columns are converted from
// tree-sitter's 0-based positions to 1-based.
func findErrorNodes(root *tree_sitter.Node, source []byte) []string {
	var errs []string

	var traverse func(*tree_sitter.Node)
	traverse = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		kind := n.Kind()
		if kind == "ERROR" || strings.Contains(kind, "MISSING") {
			pos := n.StartPosition()
			errs = append(errs, fmt.Sprintf("line %d, column %d: %s",
				int(pos.Row)+1, int(pos.Column)+1, describeErrorNode(n, source, kind)))
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			traverse(n.Child(i))
		}
	}
	traverse(root)

	// The tree can report errors without surfacing ERROR nodes when
	// recovery consumed them.
	if len(errs) == 0 {
		pos := root.StartPosition()
		errs = append(errs, fmt.Sprintf("line %d, column %d: syntax error",
			int(pos.Row)+1, int(pos.Column)+1))
	}
	return errs
}

// describeErrorNode renders a short message with the offending source
// snippet.
func describeErrorNode(n *tree_sitter.Node, source []byte, kind string) string {
	if strings.Contains(kind, "MISSING") {
		return fmt.Sprintf("missing %s", strings.TrimSpace(strings.TrimPrefix(kind, "MISSING")))
	}

	start, end := n.StartByte(), n.EndByte()
	if start >= uint(len(source)) {
		return "syntax error"
	}
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	snippet := strings.TrimSpace(string(source[start:end]))
	if len(snippet) > 40 {
		snippet = snippet[:40] + "..."
	}
	if snippet == "" {
		return "syntax error"
	}
	return fmt.Sprintf("syntax error near %q", snippet)
}

// ExtractFencedCode returns the contents of the first markdown code fence
// in text, or text unchanged when no fence is present.
func ExtractFencedCode(text string) string {
	start := strings.Index(text, "```")
	if start == -1 {
		return text
	}

	// Skip the info string on the opening fence line.
	rest := text[start+3:]
	nl := strings.Index(rest, "\n")
	if nl == -1 {
		return text
	}
	body := rest[nl+1:]

	end := strings.Index(body, "```")
	if end == -1 {
		return text
	}
	return body[:end]
}
