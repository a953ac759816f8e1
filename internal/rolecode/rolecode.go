// Package rolecode derives short role codes for resources (e.g. UXD02).
//
// Generation is advisory: it guarantees non-collision only against
// well-formed codes present at the instant of generation. Codes remain
// freely editable afterwards.
package rolecode

import (
	"fmt"
	"regexp"

	"github.com/progdeck/progdeck/internal/domain"
)

// prefixes maps descriptive role names to their code prefixes.
var prefixes = map[string]string{
	"UX Designer":        "UXD",
	"UX Program Manager": "UXPM",
	"Visual Designer":    "VD",
	"Motion Designer":    "MD",
	"Lead":               "L",
	"Engineer":           "ENG",
	"Design Manager":     "DM",
	"Product Manager":    "PM",
	"QA":                 "QA",
	"Agency":             "AGCY",
	"Contractor":         "CON",
}

// fallbackPrefix is used for roles outside the prefix table.
const fallbackPrefix = "RES"

// Prefix returns the code prefix for a role name.
func Prefix(role string) string {
	if p, ok := prefixes[role]; ok {
		return p
	}
	return fallbackPrefix
}

// Generate returns the next free code for the given role: the role's prefix
// followed by max(existing numeric suffixes)+1, zero-padded to two digits.
// The resource identified by excludeID is ignored so re-selecting a role on
// the same resource does not count its own current code.
func Generate(role string, resources []domain.Resource, excludeID string) string {
	prefix := Prefix(role)
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)

	maxSuffix := 0
	for _, r := range resources {
		if r.ID == excludeID {
			continue
		}
		m := re.FindStringSubmatch(r.RoleCode)
		if m == nil {
			continue
		}
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if n > maxSuffix {
			maxSuffix = n
		}
	}

	return fmt.Sprintf("%s%02d", prefix, maxSuffix+1)
}
