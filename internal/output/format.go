// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasks/internal/page"
)

// FormatTask formats a task line.
// Format: "{ID:>4}  [x] {TITLE}\n" (4-wide right-aligned id, two spaces, checkbox, title)
func FormatTask(w io.Writer, task page.ViewTask) {
	check := "[ ]"
	if task.Status == page.StatusCompleted {
		check = "[x]"
	}
	fmt.Fprintf(w, "%4s  %s %s\n", task.ID, check, normalizeTitle(task.Title))
}

// FormatDetail formats a task line followed by its description and
// creation time, each indented under the title.
func FormatDetail(w io.Writer, task page.ViewTask) {
	FormatTask(w, task)
	if d := strings.TrimSpace(task.Description); d != "" {
		for _, line := range strings.Split(d, "\n") {
			fmt.Fprintf(w, "      %s\n", strings.TrimRight(line, "\r"))
		}
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "      created %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// FormatCounts formats the per-filter totals footer.
func FormatCounts(w io.Writer, counts page.Counts) {
	fmt.Fprintf(w, "\n%d tasks, %d active, %d completed\n", counts.All, counts.Active, counts.Completed)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
