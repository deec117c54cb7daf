package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule maps a header text to a role. All keywords in All must be present, at
// least one of Any must be present when Any is set, and none of None may be.
type Rule struct {
	Role Role
	All  []string
	Any  []string
	None []string
}

// Keywords returns every positive keyword of the rule.
func (r Rule) Keywords() []string {
	out := make([]string, 0, len(r.All)+len(r.Any))
	out = append(out, r.All...)
	out = append(out, r.Any...)
	return out
}

// Fallback is a hard-coded column position known to hold Role in the
// canonical template of a domain.
type Fallback struct {
	Role  Role
	Index int `validate:"min=0"`
}

// ScoreColumn binds a score role to its persisted column.
type ScoreColumn struct {
	Role   Role
	Column string `validate:"required"`
}

// Domain is the immutable configuration of one import pipeline.
type Domain struct {
	Name  string `validate:"required"`
	Title string

	SheetName    string `validate:"required"`
	SheetAliases []string

	HeaderKeywords    []string `validate:"min=1,dive,required"`
	HeaderMinMatches  int      `validate:"min=1"`
	HeaderScanRows    int      `validate:"min=0"` // 0 scans the whole sheet
	SecondaryKeywords []string `validate:"dive,required"`

	Rules        []Rule        `validate:"min=1"`
	Fallbacks    []Fallback    `validate:"dive"`
	Required     []Role        `validate:"min=1"`
	CarryForward []Role        `validate:"min=1"`
	Scores       []ScoreColumn `validate:"min=1,dive"`

	NoteHeaderKeywords []string `validate:"dive,required"`
	DataStartOffset    int      `validate:"min=0"`
	MaxRow             int      `validate:"min=0"` // 0-based inclusive; 0 means physical length

	Table string `validate:"required"`
}

var validate = validator.New()

// Validate checks struct constraints and role consistency.
func (d Domain) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("domain %q: %w", d.Name, err)
	}
	if d.HeaderMinMatches > len(d.HeaderKeywords) {
		return fmt.Errorf("domain %q: header_min_matches %d exceeds %d keywords", d.Name, d.HeaderMinMatches, len(d.HeaderKeywords))
	}

	known := make(map[Role]bool)
	for _, r := range d.Rules {
		if len(r.All) == 0 && len(r.Any) == 0 {
			return fmt.Errorf("domain %q: rule for %s has no keywords", d.Name, r.Role)
		}
		known[r.Role] = true
	}
	for _, f := range d.Fallbacks {
		known[f.Role] = true
	}

	check := func(what string, roles []Role) error {
		for _, role := range roles {
			if !known[role] {
				return fmt.Errorf("domain %q: %s role %s has no rule or fallback", d.Name, what, role)
			}
		}
		return nil
	}
	if err := check("required", d.Required); err != nil {
		return err
	}
	if err := check("carry-forward", d.CarryForward); err != nil {
		return err
	}
	for _, role := range d.CarryForward {
		if role.Kind() != KindLabel {
			return fmt.Errorf("domain %q: carry-forward role %s is not a label", d.Name, role)
		}
	}
	seen := make(map[string]bool)
	for _, s := range d.Scores {
		if s.Role.Kind() != KindScore {
			return fmt.Errorf("domain %q: score role %s is not numeric", d.Name, s.Role)
		}
		if seen[s.Column] {
			return fmt.Errorf("domain %q: duplicate score column %s", d.Name, s.Column)
		}
		seen[s.Column] = true
		if !known[s.Role] {
			return fmt.Errorf("domain %q: score role %s has no rule or fallback", d.Name, s.Role)
		}
	}
	return nil
}

// ScoreRoles returns the score roles in persisted order.
func (d Domain) ScoreRoles() []Role {
	out := make([]Role, 0, len(d.Scores))
	for _, s := range d.Scores {
		out = append(out, s.Role)
	}
	return out
}

// IsCarryForward reports whether role inherits values from previous rows.
func (d Domain) IsCarryForward(role Role) bool {
	for _, r := range d.CarryForward {
		if r == role {
			return true
		}
	}
	return false
}

// RuleKeywords returns all keywords of the rules for role.
func (d Domain) RuleKeywords(role Role) []string {
	var out []string
	for _, r := range d.Rules {
		if r.Role == role {
			out = append(out, r.Keywords()...)
		}
	}
	return out
}

// Override carries per-deployment adjustments read from config.toml.
type Override struct {
	SheetName      string `toml:"sheet_name"`
	HeaderScanRows *int   `toml:"header_scan_rows"`
	MaxRow         *int   `toml:"max_row"`
}

// WithOverride returns a copy of d with the non-zero override fields applied.
// The previous sheet name stays reachable as an alias.
func (d Domain) WithOverride(o Override) Domain {
	out := d
	if name := strings.TrimSpace(o.SheetName); name != "" && name != d.SheetName {
		out.SheetAliases = append([]string{d.SheetName}, d.SheetAliases...)
		out.SheetName = name
	}
	if o.HeaderScanRows != nil {
		out.HeaderScanRows = *o.HeaderScanRows
	}
	if o.MaxRow != nil {
		out.MaxRow = *o.MaxRow
	}
	return out
}

// Registry holds the domains of one process. It is built once at start-up.
type Registry struct {
	domains map[string]Domain
}

// NewRegistry validates and indexes domains by name.
func NewRegistry(domains ...Domain) (*Registry, error) {
	reg := &Registry{domains: make(map[string]Domain, len(domains))}
	for _, d := range domains {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := reg.domains[d.Name]; dup {
			return nil, fmt.Errorf("duplicate domain %q", d.Name)
		}
		reg.domains[d.Name] = d
	}
	return reg, nil
}

// DefaultRegistry builds the registry of built-in pipelines with overrides applied.
func DefaultRegistry(overrides map[string]Override) (*Registry, error) {
	builtins := Builtins()
	for i, d := range builtins {
		if o, ok := overrides[d.Name]; ok {
			builtins[i] = d.WithOverride(o)
		}
	}
	for name := range overrides {
		found := false
		for _, d := range builtins {
			if d.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("override for unknown domain %q", name)
		}
	}
	return NewRegistry(builtins...)
}

// Lookup returns the domain registered under name.
func (r *Registry) Lookup(name string) (Domain, bool) {
	d, ok := r.domains[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Names returns the registered domain names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shared columns of every domain table; score columns sit between platoon and note
var sharedHead = []string{"order_number", "battalion", "company", "platoon"}
var sharedTail = []string{"note", "ranking", "batch_id", "source_file", "sheet_name", "imported_by_id", "row_no"}

// Columns returns the insert column list of the domain table.
func (d Domain) Columns() []string {
	out := make([]string, 0, len(sharedHead)+len(d.Scores)+len(sharedTail))
	out = append(out, sharedHead...)
	for _, s := range d.Scores {
		out = append(out, s.Column)
	}
	return append(out, sharedTail...)
}

// HeaderTitle is a column title that the rules of d classify as role, used
// when writing sheets in the domain layout.
func (d Domain) HeaderTitle(role Role) string {
	for _, r := range d.Rules {
		if r.Role != role {
			continue
		}
		title := strings.Join(r.All, "")
		if len(r.Any) > 0 {
			title += r.Any[0]
		}
		return title
	}
	return role.String()
}

// HasRule reports whether some rule classifies role.
func (d Domain) HasRule(role Role) bool {
	for _, r := range d.Rules {
		if r.Role == role {
			return true
		}
	}
	return false
}
