package table

import (
	"time"

	"github.com/agentstation/aadsync/internal/auth"
	"github.com/agentstation/aadsync/internal/cmd/emoji"
)

// StatusToTableData converts a credential status to a property/value table.
func StatusToTableData(status *auth.Status) Data {
	icon, state := statusDisplay(status.State)
	rows := [][]string{
		{"Status", icon + " " + state},
		{"Summary", orDash(status.Summary)},
	}

	if cli := status.CLI; cli != nil {
		rows = append(rows,
			[]string{"Azure CLI", orDash(cli.Executable)},
			[]string{"Account", orDash(cli.Account)},
			[]string{"Tenant", orDash(cli.TenantID)},
			[]string{"Tenant Source", orDash(cli.TenantSource)},
			[]string{"Profile", orDash(cli.ProfilePath)},
		)
		if !cli.LastLogin.IsZero() {
			rows = append(rows, []string{"Last Login", cli.LastLogin.Format(time.RFC3339)})
		}
	}

	if status.Token != nil {
		rows = append(rows,
			[]string{"Token Scope", status.Token.Scope},
			[]string{"Token Expires", status.Token.ExpiresOn.Format(time.RFC3339)},
		)
	}

	return Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

func statusDisplay(state auth.State) (string, string) {
	switch state {
	case auth.StateConfigured:
		return emoji.Success, state.String()
	case auth.StateMissing:
		return emoji.Error, state.String()
	case auth.StateInvalid:
		return emoji.Warning, state.String()
	default:
		return emoji.Unknown, "Unknown"
	}
}
