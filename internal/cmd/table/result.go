package table

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/aadsync/internal/cmd/emoji"
	"github.com/agentstation/aadsync/pkg/reconciler"
)

// ResultToTableData converts a reconciliation result to one row per change.
func ResultToTableData(result *reconciler.Result) Data {
	caser := cases.Title(language.English)

	rows := make([][]string, 0, len(result.Changes))
	for _, c := range result.Changes {
		rows = append(rows, []string{
			changeSymbol(c.Type),
			caser.String(string(c.Type)),
			caser.String(string(c.Pass)),
			c.User.PrincipalName,
			orDash(c.User.Mail),
			orDash(c.Reason),
		})
	}

	return Data{
		Headers:         []string{"", "Action", "Pass", "User", "Mail", "Reason"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignDefault, AlignDefault, AlignDefault, AlignDefault, AlignDefault},
	}
}

// SourcesToTableData lists the resolved source users.
func SourcesToTableData(result *reconciler.Result) Data {
	rows := make([][]string, 0, len(result.Sources))
	for _, u := range result.Sources {
		rows = append(rows, []string{u.PrincipalName, orDash(u.DisplayName), orDash(u.Mail)})
	}
	return Data{
		Headers: []string{"User", "Name", "Mail"},
		Rows:    rows,
	}
}

func changeSymbol(t reconciler.ChangeType) string {
	switch t {
	case reconciler.ChangeAdd:
		return emoji.Add
	case reconciler.ChangeRemove:
		return emoji.Remove
	case reconciler.ChangeSkip:
		return emoji.Skip
	default:
		return emoji.Unknown
	}
}
