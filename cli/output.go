package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/xhhuango/json"
)

// render writes v as indented JSON when --json is set, otherwise calls
// text with a tab aligned writer.
func (a *App) render(w io.Writer, v interface{}, text func(w io.Writer)) error {
	if a.JSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}
