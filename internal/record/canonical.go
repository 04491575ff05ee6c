package record

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeID canonicalizes a record id for cross-collection matching.
//
// Ids are joined across collections by string equality (requirement ->
// output -> verification chains), so two visually identical ids must
// compare equal regardless of how they were typed. Normalization is
// NFC plus surrounding-whitespace trim; case is preserved because the
// compliance ids are case-significant ("UN-001" vs "un-001" are
// distinct records by convention).
func NormalizeID(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
