package snapshot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/inovacc/envsync/internal/encoding"
	"github.com/inovacc/envsync/internal/model"
)

// RefreshCommand is named in the report preamble.
const RefreshCommand = "envsync sync"

const reportHeader = "# Codex Environments\n\n" +
	"> Generated automatically. Run `" + RefreshCommand + "` to refresh.\n\n" +
	"| Repository | URL | Category | Status | Default Enabled |\n" +
	"| --- | --- | --- | --- | --- |\n"

// RenderReport renders the human-readable markdown table. The output does not
// include the generation time, so it only changes when environments change.
func RenderReport(s model.Snapshot) []byte {
	var buf bytes.Buffer

	buf.WriteString(reportHeader)

	for i, env := range s.Environments {
		if i > 0 {
			buf.WriteByte('\n')
		}

		_, _ = fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |",
			cell(env.Name),
			cell(env.URL),
			cell(env.Category),
			cell(string(env.Status)),
			yesNo(env.DefaultEnabled),
		)
	}

	if len(s.Environments) > 0 {
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// RenderState renders the machine-readable state file.
func RenderState(s model.Snapshot) ([]byte, error) {
	if s.Environments == nil {
		s.Environments = []model.Environment{}
	}

	return encoding.ToJSONIndent(s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

// cell keeps a value from breaking the table layout.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
