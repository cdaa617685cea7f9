package doc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nilern/scriptjure/compiler"
)

func extract(t *testing.T, src string) *FileDoc {
	t.Helper()
	fd, err := Extract(src, "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return fd
}

func TestExtract_FileDoc(t *testing.T) {
	src := `# File-level documentation.
# Second line.

program:
  - [f]
`
	fd := extract(t, src)
	if fd.Doc != "File-level documentation.\nSecond line." {
		t.Errorf("file doc = %q", fd.Doc)
	}
}

func TestExtract_FormDoc(t *testing.T) {
	src := `forms:
  # Multiplies a value by itself.
  square: ["*", "~", "~"]
program:
  - [square, 2]
`
	fd := extract(t, src)
	if len(fd.Forms) != 1 {
		t.Fatalf("expected 1 form, got %d", len(fd.Forms))
	}
	f := fd.Forms[0]
	if f.Name != "square" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Doc != "Multiplies a value by itself." {
		t.Errorf("doc = %q", f.Doc)
	}
	if len(f.Params) != 2 || f.Params[0] != "~" || f.Params[1] != "~" {
		t.Errorf("params = %v", f.Params)
	}
	if f.Line != 3 {
		t.Errorf("line = %d", f.Line)
	}
	if got := f.Signature(); got != "(square ~ ~)" {
		t.Errorf("signature = %q", got)
	}
}

func TestExtract_MultiLineTemplate(t *testing.T) {
	src := `forms:
  # Runs the body unless the test holds.
  # Mirrors when.
  unless:
    - if
    - ["!", "~"]
    - [do, '~@']
  plain: [f]
`
	fd := extract(t, src)
	if len(fd.Forms) != 2 {
		t.Fatalf("expected 2 forms, got %d: %+v", len(fd.Forms), fd.Forms)
	}
	u := fd.Forms[0]
	if u.Doc != "Runs the body unless the test holds.\nMirrors when." {
		t.Errorf("doc = %q", u.Doc)
	}
	if strings.Join(u.Params, " ") != "~ ~@" {
		t.Errorf("params = %v", u.Params)
	}
	if fd.Forms[1].Doc != "" || fd.Forms[1].Signature() != "(plain)" {
		t.Errorf("plain = %+v", fd.Forms[1])
	}
}

func TestExtract_BlankLineBreaksAttachment(t *testing.T) {
	src := `program: []
forms:
  # Detached comment.

  square: ["*", "~", "~"]
`
	fd := extract(t, src)
	if len(fd.Forms) != 1 {
		t.Fatalf("expected 1 form, got %d", len(fd.Forms))
	}
	if fd.Forms[0].Doc != "" {
		t.Errorf("doc = %q, want empty", fd.Forms[0].Doc)
	}
}

func TestExtract_IgnoresProgram(t *testing.T) {
	src := `program:
  # Not a form.
  - [var, x, {str: "a: b"}]
`
	fd := extract(t, src)
	if len(fd.Forms) != 0 {
		t.Errorf("expected no forms, got %+v", fd.Forms)
	}
}

func TestExtract_FlowStyle(t *testing.T) {
	src := `# File doc.

forms: {square: ["*", "~", "~"], "log-all": [do, [doseq, {vec: [x, "~"]}, [console.log, x]]]}
program: [[square, 2]]
`
	fd := extract(t, src)
	if fd.Doc != "File doc." {
		t.Errorf("file doc = %q", fd.Doc)
	}
	if len(fd.Forms) != 2 {
		t.Fatalf("expected 2 forms, got %+v", fd.Forms)
	}
	if got := fd.Forms[0].Signature(); got != "(square ~ ~)" {
		t.Errorf("signature = %q", got)
	}
	if got := fd.Forms[1].Signature(); got != "(log-all ~)" {
		t.Errorf("signature = %q", got)
	}
	if fd.Forms[0].Line != 3 || fd.Forms[0].Doc != "" {
		t.Errorf("square = %+v", fd.Forms[0])
	}
}

func TestExtract_QuotedKeys(t *testing.T) {
	src := `forms:
  # Splices a body.
  "body": [do, "~@"]
  'twice': ["*", 2, '~']
`
	fd := extract(t, src)
	if len(fd.Forms) != 2 {
		t.Fatalf("expected 2 forms, got %+v", fd.Forms)
	}
	if fd.Forms[0].Name != "body" || fd.Forms[0].Doc != "Splices a body." || fd.Forms[0].Signature() != "(body ~@)" {
		t.Errorf("body = %+v", fd.Forms[0])
	}
	if fd.Forms[1].Name != "twice" || fd.Forms[1].Signature() != "(twice ~)" {
		t.Errorf("twice = %+v", fd.Forms[1])
	}
}

func TestExtract_SyntaxError(t *testing.T) {
	if _, err := Extract("forms: [unclosed", "bad.yaml"); err == nil || !strings.HasPrefix(err.Error(), "bad.yaml: ") {
		t.Errorf("err = %v", err)
	}
}

func TestExtractDir_FirstFileDoc(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("forms:\n  a: [f]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("# Second file.\n\nforms:\n  b: [g]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fd, err := ExtractDir(dir, "")
	if err != nil {
		t.Fatal(err)
	}
	if fd.Doc != "Second file." || len(fd.Forms) != 2 {
		t.Errorf("ExtractDir = %+v", fd)
	}
}

func TestExtractDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("main.yaml", "# Main document.\n\nforms:\n  # A.\n  a: [f]\n")
	write("lib.yml", "forms:\n  # B.\n  b: [g, \"~\"]\n")
	write("notes.txt", "forms:\n  c: [h]\n")

	fd, err := ExtractDir(dir, filepath.Join(dir, "main.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if fd.Doc != "Main document." {
		t.Errorf("doc = %q", fd.Doc)
	}
	var names []string
	for _, f := range fd.Forms {
		names = append(names, f.Name)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Errorf("forms = %v", names)
	}
}

func TestLookupForm(t *testing.T) {
	fd := extract(t, "forms:\n  # Squares.\n  square: [\"*\", \"~\", \"~\"]\n")
	doc, sig, ok := LookupForm(fd, "square")
	if !ok || doc != "Squares." || sig != "(square ~ ~)" {
		t.Errorf("LookupForm = %q, %q, %v", doc, sig, ok)
	}
	if _, _, ok := LookupForm(fd, "missing"); ok {
		t.Error("found missing form")
	}
}

func TestSpecialFormsAreDocumented(t *testing.T) {
	names := compiler.SpecialForms()
	docs := Special()
	if len(docs) != len(names) {
		t.Fatalf("%d documented special forms, %d special forms", len(docs), len(names))
	}
	for i, name := range names {
		if docs[i].Name != name {
			t.Errorf("special form %d: documented %q, want %q", i, docs[i].Name, name)
		}
		if docs[i].Usage == "" || docs[i].Doc == "" {
			t.Errorf("special form %s lacks documentation", name)
		}
	}
}

func TestRegisterAndLookup(t *testing.T) {
	Register(FormDoc{Name: "doc-test-form", Usage: "(doc-test-form x)", Doc: "Test form."})
	f, ok := Lookup("doc-test-form")
	if !ok || f.Signature() != "(doc-test-form x)" {
		t.Errorf("Lookup = %+v, %v", f, ok)
	}
	if f, ok := Lookup("if"); !ok || f.Usage != "(if test then else?)" {
		t.Errorf("Lookup(if) = %+v, %v", f, ok)
	}
	got := Custom([]string{"doc-test-form", "undocumented"})
	if got[0].Doc != "Test form." || got[1].Name != "undocumented" || got[1].Doc != "" {
		t.Errorf("Custom = %+v", got)
	}
}

func TestFormatFile(t *testing.T) {
	fd := extract(t, "# Helpers.\n\nforms:\n  # Squares.\n  square: [\"*\", \"~\", \"~\"]\n  hidden: [f]\n")
	want := "Helpers.\n\n(square ~ ~)\n    Squares.\n"
	if got := FormatFile(fd); got != want {
		t.Errorf("FormatFile = %q, want %q", got, want)
	}
}

func TestFormatForm(t *testing.T) {
	got := FormatForm("Line one.\nLine two.", "(f x)")
	want := "(f x)\n    Line one.\n    Line two.\n"
	if got != want {
		t.Errorf("FormatForm = %q, want %q", got, want)
	}
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]FormDoc{{Name: "when", Doc: "Runs body when test holds.\nMore."}, {Name: "bare"}})
	for _, want := range []string{
		"Special forms:\n",
		"  if           Conditional statement.\n",
		"\nCustom forms:\n",
		"  when         Runs body when test holds.\n",
		"  bare\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatAll output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(FormatAll(nil), "  (none)\n") {
		t.Error("empty custom list not marked")
	}
}
