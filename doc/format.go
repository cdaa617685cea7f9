package doc

import (
	"fmt"
	"strings"
)

// FormatFile formats a FileDoc for terminal display.
func FormatFile(fd *FileDoc) string {
	var sb strings.Builder

	if fd.Doc != "" {
		sb.WriteString(fd.Doc)
		sb.WriteString("\n\n")
	}

	for _, f := range fd.Forms {
		if f.Doc == "" {
			continue
		}
		formatForm(&sb, f)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatForm formats a single form lookup result.
func FormatForm(docStr, signature string) string {
	var sb strings.Builder
	formatForm(&sb, FormDoc{Usage: signature, Doc: docStr})
	return sb.String()
}

// FormatAll lists the special forms and the given custom forms, one line
// each with the first line of their documentation.
func FormatAll(registered []FormDoc) string {
	var sb strings.Builder

	sb.WriteString("Special forms:\n")
	for _, f := range Special() {
		writeSummary(&sb, f)
	}

	sb.WriteString("\nCustom forms:\n")
	if len(registered) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, f := range registered {
		writeSummary(&sb, f)
	}

	return sb.String()
}

func writeSummary(sb *strings.Builder, f FormDoc) {
	line := fmt.Sprintf("  %-12s", f.Name)
	if f.Doc != "" {
		first, _, _ := strings.Cut(f.Doc, "\n")
		line += " " + first
	}
	sb.WriteString(strings.TrimRight(line, " "))
	sb.WriteString("\n")
}

func formatForm(sb *strings.Builder, f FormDoc) {
	sb.WriteString(f.Signature())
	sb.WriteString("\n")
	if f.Doc != "" {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(f.Doc, "\n", "\n    "))
		sb.WriteString("\n")
	}
}
