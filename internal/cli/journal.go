package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/studiowebux/popfocus/internal/journal"
	"gopkg.in/yaml.v3"
)

// FormatJournal renders journal entries, newest first as listed
func FormatJournal(w io.Writer, entries []journal.Entry, format string, showDiff bool) error {
	if !showDiff {
		trimmed := make([]journal.Entry, len(entries))
		for i, e := range entries {
			e.Diff = ""
			trimmed[i] = e
		}
		entries = trimmed
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal journal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal journal: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "text", "":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "No journal entries")
			return err
		}

		var sb strings.Builder
		for _, e := range entries {
			sb.WriteString(fmt.Sprintf("%s  %-8s #%-4d %-40s editing %s -> %s, focus %s -> %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.SessionID.String()[:8],
				e.Seq,
				e.Action,
				e.EditingBefore, e.EditingAfter,
				e.FocusBefore, e.FocusAfter,
			))
			if e.Diff != "" {
				for _, line := range strings.Split(strings.TrimRight(e.Diff, "\n"), "\n") {
					sb.WriteString("    " + line + "\n")
				}
			}
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}
