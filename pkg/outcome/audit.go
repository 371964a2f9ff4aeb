package outcome

import (
	"fmt"
	"strings"

	"github.com/agentstation/cbxmatch/pkg/matching"
)

const (
	selectedPrefix = ">>> SELECTED BEST MATCH: "
	consideredHead = ">>> ALL CANDIDATES CONSIDERED:\n"
)

// auditLine renders one entity for the analysis column.
func auditLine(e matching.AuditEntry, sep string) string {
	return fmt.Sprintf("%s --> CR%d, AR%d, CM%t, DM%t, HCC%d, M[%s]\n",
		e.Summary, e.NameScore, e.AddressScore, e.ContactMatch, e.DomainMatch,
		e.RelationshipCount, strings.Join(e.Modules, sep))
}

// RenderAnalysis renders the audit trail of a record. A confident match is
// announced ahead of every candidate considered; a match without any audited
// candidate is described on its own.
func RenderAnalysis(d matching.Decision, audit []matching.AuditEntry, sep string) string {
	var b strings.Builder
	if d.Matched() && !d.Ambiguous {
		b.WriteString(selectedPrefix)
		b.WriteString(auditLine(matching.NewAuditEntry(d.Candidate), sep))
		if len(audit) == 0 {
			return strings.TrimPrefix(b.String(), selectedPrefix)
		}
		b.WriteString("\n")
		b.WriteString(consideredHead)
	} else if d.Matched() && len(audit) == 0 {
		return auditLine(matching.NewAuditEntry(d.Candidate), sep)
	}
	for _, e := range audit {
		b.WriteString(auditLine(e, sep))
	}
	return b.String()
}
