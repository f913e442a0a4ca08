package extract

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"

	"github.com/hirekit/slotflow/schema"
)

func formatFieldSection(field schema.FieldSpec) string {
	var buf strings.Builder
	buf.WriteString("# Active field:\n")
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Key", "Label", "Kind", "Mode")
	_ = table.Append(field.Key, field.Label, string(field.Kind), string(field.Extractor.Mode))
	_ = table.Render()

	if len(field.Extractor.Terms) > 0 {
		buf.WriteString("\n# Known values:\n")
		terms := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
		terms.Header("Canonical", "Synonyms")
		for _, term := range field.Extractor.Terms {
			_ = terms.Append(term.Canonical, strings.Join(term.Synonyms, ", "))
		}
		_ = terms.Render()
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatBufferSection(buffer []string) string {
	if len(buffer) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("# Earlier answers for this field (still unresolved):\n")
	for i, entry := range buffer {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, entry))
	}
	return strings.TrimRight(sb.String(), "\n")
}
