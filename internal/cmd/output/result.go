package output

import (
	"fmt"
	"io"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/internal/cmd/table"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// Result writes a reconciliation result. Table output lists the resolved
// sources, then the changes, then the summary line; structured formats
// encode the whole result.
func Result(w io.Writer, result *reconciler.Result, format Format) error {
	if format != FormatTable {
		return NewFormatter(format).Format(w, result)
	}

	formatter := NewFormatter(format)
	if len(result.Sources) > 0 {
		if err := formatter.Format(w, table.SourcesToTableData(result)); err != nil {
			return err
		}
	}
	if len(result.Changes) > 0 {
		if err := formatter.Format(w, table.ResultToTableData(result)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, result.Summary())
	return err
}

// Status writes a credential status.
func Status(w io.Writer, status *auth.Status, format Format) error {
	if format != FormatTable {
		return NewFormatter(format).Format(w, status)
	}
	return NewFormatter(format).Format(w, table.StatusToTableData(status))
}
