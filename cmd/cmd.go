package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nilern/scriptjure/ast"
	"github.com/nilern/scriptjure/compiler"
	"github.com/nilern/scriptjure/doc"
	"github.com/nilern/scriptjure/forms"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// errNoInput is returned when no file is given and stdin is a terminal.
var errNoInput = errors.New("no input: pass a tree document file or pipe one on stdin")

// Execute runs the scriptjure CLI with the given version string.
// Import form packages via blank imports before calling this function
// so they register via init().
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "scriptjure",
		Usage:                  "Emit JavaScript from a YAML expression tree",
		Version:                version,
		UseShortOptionHandling: true,
		Flags:                  []cli.Flag{verboseFlag()},
		// Allow `scriptjure tree.yaml` as shorthand for `scriptjure emit tree.yaml`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 || !term.IsTerminal(int(os.Stdin.Fd())) {
				return emitAction(ctx, cmd)
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "emit",
				Usage:     "Output the JavaScript for a tree document",
				ArgsUsage: "[tree.yaml | -]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write JavaScript to this file instead of stdout",
					},
					verboseFlag(),
				},
				Action: emitAction,
			},
			{
				Name:      "expand",
				Usage:     "Print the program with every custom form expanded",
				ArgsUsage: "[tree.yaml | -]",
				Flags:     []cli.Flag{verboseFlag()},
				Action:    expandAction,
			},
			{
				Name:      "forms",
				Usage:     "List special forms and registered custom forms, or describe one",
				ArgsUsage: "[form]",
				Action:    formsAction,
			},
			{
				Name:      "doc",
				Usage:     "Show documentation for the forms a tree document defines",
				ArgsUsage: "<tree.yaml | dir> [form]",
				Action:    docAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log debug information to stderr",
	}
}

// newLogger returns a text logger on w. Debug records are only written
// when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	log := newLogger(os.Stderr, cmd.Bool("verbose"))
	data, name, err := readInput(cmd.Args().First())
	if err != nil {
		return err
	}
	js, err := emitDocument(data, name, log)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(js, "\n") {
		js += "\n"
	}

	output := cmd.String("output")
	if output == "" {
		_, err = io.WriteString(os.Stdout, js)
		return err
	}
	if _, err := os.Stat(output); err == nil {
		log.Warn("overwriting output file", "path", output)
	}
	if err := os.WriteFile(output, []byte(js), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.Debug("wrote output", "path", output, "bytes", len(js))
	return nil
}

func expandAction(ctx context.Context, cmd *cli.Command) error {
	log := newLogger(os.Stderr, cmd.Bool("verbose"))
	data, name, err := readInput(cmd.Args().First())
	if err != nil {
		return err
	}
	out, err := expandDocument(data, name, log)
	if err != nil {
		return err
	}
	_, err = io.WriteString(os.Stdout, out)
	return err
}

func formsAction(ctx context.Context, cmd *cli.Command) error {
	if name := cmd.Args().First(); name != "" {
		f, ok := doc.Lookup(name)
		if !ok {
			if !forms.Default.IsForm(name) {
				return fmt.Errorf("unknown form %q", name)
			}
			f = doc.FormDoc{Name: name}
		}
		fmt.Print(doc.FormatForm(f.Doc, f.Signature()))
		return nil
	}
	fmt.Print(doc.FormatAll(doc.Custom(forms.Names())))
	return nil
}

func docAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: scriptjure doc <tree.yaml | dir> [form]")
	}
	out, err := docText(path, cmd.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// docText renders the documentation of a tree document or a directory of
// them, or of a single form when name is set.
func docText(path, name string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	var fd *doc.FileDoc
	if info.IsDir() {
		entry := filepath.Join(path, "main.yaml")
		if _, err := os.Stat(entry); err != nil {
			entry = ""
		}
		fd, err = doc.ExtractDir(path, entry)
	} else {
		fd, err = doc.ExtractFile(path)
	}
	if err != nil {
		return "", err
	}
	if name == "" {
		return doc.FormatFile(fd), nil
	}
	docStr, sig, ok := doc.LookupForm(fd, name)
	if !ok {
		return "", fmt.Errorf("form %q not found in %s", name, path)
	}
	return doc.FormatForm(docStr, sig), nil
}

// readInput reads the named file, or stdin for "" and "-". An empty path
// with a terminal on stdin is an error rather than a silent hang.
func readInput(path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		if path == "" && term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, "", errNoInput
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return data, path, nil
}

// loadDocument decodes a tree document and builds the registry it is
// emitted with: the default forms plus the document's own template forms.
func loadDocument(data []byte, name string, log *slog.Logger) (*ast.Document, *forms.Registry, error) {
	doc, err := ast.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	reg := forms.Default.Clone()
	for _, def := range doc.Forms {
		fn, err := forms.TemplateForm(def.Template)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: form %s: %w", name, def.Name, err)
		}
		if reg.IsForm(def.Name) {
			log.Warn("document form shadows a registered form", "form", def.Name)
		}
		reg.Register(def.Name, fn)
	}
	log.Debug("decoded document", "source", name, "forms", len(doc.Forms), "nodes", len(doc.Program))
	return doc, reg, nil
}

// emitDocument decodes a tree document and emits its program.
func emitDocument(data []byte, name string, log *slog.Logger) (string, error) {
	doc, reg, err := loadDocument(data, name, log)
	if err != nil {
		return "", err
	}
	start := time.Now()
	comp := &compiler.Compiler{Forms: reg}
	js, err := comp.Emit(doc.Program...)
	if err != nil {
		var ce *compiler.Error
		if errors.As(err, &ce) {
			log.Debug("emission failed", "source", name, "failure", ce)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	log.Debug("emitted program", "source", name, "bytes", len(js), "elapsed", time.Since(start))
	return js, nil
}

// expandDocument decodes a tree document and returns its program with all
// custom forms expanded, one readable form per line.
func expandDocument(data []byte, name string, log *slog.Logger) (string, error) {
	doc, reg, err := loadDocument(data, name, log)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, n := range doc.Program {
		out, err := reg.ExpandAll(n)
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		sb.WriteString(ast.Print(out))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
