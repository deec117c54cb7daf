package domain

import "fmt"

// Role is the semantic meaning assigned to a spreadsheet column.
type Role int

const (
	RoleUnknown Role = iota
	RoleOrder
	RoleBattalion
	RoleCompany
	RolePlatoon
	RoleNote
	RoleTheory
	RolePractical
	RoleTotal
	RolePercent
	RoleDeduction
	RolePushUp
	RoleSitUp
	RoleRun
	RoleAverage
	RoleMerit
	RoleScore
	RoleFullScore
)

// RoleKind groups roles by how the extractor reads them.
type RoleKind int

const (
	KindScore RoleKind = iota // numeric, optional per row
	KindLabel                 // hierarchical location label
	KindOrder                 // order-label column
	KindNote                  // free text note
)

var roleNames = map[Role]string{
	RoleUnknown:   "unknown",
	RoleOrder:     "order",
	RoleBattalion: "battalion",
	RoleCompany:   "company",
	RolePlatoon:   "platoon",
	RoleNote:      "note",
	RoleTheory:    "theory",
	RolePractical: "practical",
	RoleTotal:     "total",
	RolePercent:   "percent",
	RoleDeduction: "deduction",
	RolePushUp:    "push_up",
	RoleSitUp:     "sit_up",
	RoleRun:       "run",
	RoleAverage:   "average",
	RoleMerit:     "merit",
	RoleScore:     "score",
	RoleFullScore: "full_score",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Kind reports how values of the role are read.
func (r Role) Kind() RoleKind {
	switch r {
	case RoleBattalion, RoleCompany, RolePlatoon:
		return KindLabel
	case RoleOrder:
		return KindOrder
	case RoleNote:
		return KindNote
	default:
		return KindScore
	}
}

// MarshalText renders the role by name in JSON maps and payloads.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a role name.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, ok := ParseRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role %q", string(text))
	}
	*r = parsed
	return nil
}

// ParseRole looks a role up by name.
func ParseRole(name string) (Role, bool) {
	for role, n := range roleNames {
		if n == name && role != RoleUnknown {
			return role, true
		}
	}
	return RoleUnknown, false
}

// RoleNames renders a role list as names, keeping order.
func RoleNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
