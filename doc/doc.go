// Package doc extracts documentation for custom forms from tree documents
// and holds the reference documentation of the built-in forms.
//
// Documents are parsed with comments kept. Consecutive # lines immediately
// before an entry of the top-level forms mapping (no blank line gap) are
// attached as the doc comment for that form.
package doc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlast "github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// FileDoc holds all extracted documentation for a single tree document.
type FileDoc struct {
	Path  string
	Doc   string // file-level doc (first # block before any content)
	Forms []FormDoc
}

// FormDoc describes a documented form.
type FormDoc struct {
	Name   string   // e.g. "square"
	Params []string // placeholders in substitution order, "~" or "~@"
	Usage  string   // built-in forms only, e.g. "(if test then else?)"
	Doc    string
	Line   int // 1-based line number of the definition, 0 for built-ins
}

// Signature renders the form's call shape.
func (f FormDoc) Signature() string {
	if f.Usage != "" {
		return f.Usage
	}
	if len(f.Params) == 0 {
		return "(" + f.Name + ")"
	}
	return "(" + f.Name + " " + strings.Join(f.Params, " ") + ")"
}

// ExtractFile reads a tree document and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(string(data), path)
}

// ExtractDir reads all tree documents in a directory (non-recursive) and
// returns aggregated documentation. The entry file's doc becomes the
// top-level doc; without an entry file the first file doc found is used.
// Other files contribute their forms.
func ExtractDir(dir, entryFile string) (*FileDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := &FileDoc{Path: dir}

	if entryFile != "" {
		fd, err := ExtractFile(entryFile)
		if err == nil {
			result.Doc = fd.Doc
			result.Forms = append(result.Forms, fd.Forms...)
		}
	}

	entryBase := ""
	if entryFile != "" {
		entryBase = filepath.Base(entryFile)
	}

	for _, e := range entries {
		if e.IsDir() || !isTreeFile(e.Name()) {
			continue
		}
		if e.Name() == entryBase {
			continue // already processed
		}
		fd, err := ExtractFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		if entryFile == "" && result.Doc == "" {
			result.Doc = fd.Doc
		}
		result.Forms = append(result.Forms, fd.Forms...)
	}

	return result, nil
}

// Extract parses a raw tree document and returns structured documentation.
func Extract(src, path string) (*FileDoc, error) {
	f, err := parser.ParseBytes([]byte(src), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fd := &FileDoc{Path: path, Doc: fileDoc(src)}
	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return fd, nil
	}
	for _, entry := range mappingValues(f.Docs[0].Body) {
		if keyName(entry.Key) != "forms" {
			continue
		}
		for _, form := range mappingValues(entry.Value) {
			line := form.Key.GetToken().Position.Line
			fd.Forms = append(fd.Forms, FormDoc{
				Name:   keyName(form.Key),
				Params: placeholders(form.Value),
				Doc:    headComment(form.GetComment(), line),
				Line:   line,
			})
		}
	}
	return fd, nil
}

// fileDoc returns the block of consecutive comment lines that opens src.
func fileDoc(src string) string {
	var lines []string
	prev := 0
	for _, tk := range lexer.Tokenize(src) {
		if tk.Type != token.CommentType {
			break
		}
		if prev != 0 && tk.Position.Line != prev+1 {
			break
		}
		lines = append(lines, commentText(tk))
		prev = tk.Position.Line
	}
	return strings.Join(lines, "\n")
}

// headComment returns the comment lines of cg that end on the line just
// above line, without a gap.
func headComment(cg *yamlast.CommentGroupNode, line int) string {
	if cg == nil {
		return ""
	}
	var lines []string
	for i := len(cg.Comments) - 1; i >= 0; i-- {
		tk := cg.Comments[i].Token
		if tk == nil || tk.Position.Line != line-1-len(lines) {
			break
		}
		lines = append([]string{commentText(tk)}, lines...)
	}
	return strings.Join(lines, "\n")
}

func commentText(tk *token.Token) string {
	return strings.TrimPrefix(strings.TrimRight(tk.Value, "\r"), " ")
}

func mappingValues(n yamlast.Node) []*yamlast.MappingValueNode {
	switch n := n.(type) {
	case *yamlast.MappingNode:
		return n.Values
	case *yamlast.MappingValueNode:
		return []*yamlast.MappingValueNode{n}
	case *yamlast.TagNode:
		return mappingValues(n.Value)
	case *yamlast.AnchorNode:
		return mappingValues(n.Value)
	}
	return nil
}

func keyName(k yamlast.MapKeyNode) string {
	if s, ok := k.(*yamlast.StringNode); ok {
		return s.Value
	}
	return k.String()
}

type placeholderVisitor struct {
	params []string
}

func (v *placeholderVisitor) Visit(n yamlast.Node) yamlast.Visitor {
	if s, ok := n.(*yamlast.StringNode); ok && (s.Value == "~" || s.Value == "~@") {
		v.params = append(v.params, s.Value)
	}
	return v
}

// placeholders lists the template placeholders of a form body in
// substitution order.
func placeholders(n yamlast.Node) []string {
	if n == nil {
		return nil
	}
	v := &placeholderVisitor{}
	yamlast.Walk(v, n)
	return v.params
}

// isTreeFile returns true if the filename has a YAML extension.
func isTreeFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// LookupForm finds a specific form by name in a FileDoc.
func LookupForm(fd *FileDoc, name string) (doc string, signature string, found bool) {
	for _, f := range fd.Forms {
		if f.Name == name {
			return f.Doc, f.Signature(), true
		}
	}
	return "", "", false
}
