package parser

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

type compiledRule struct {
	role domain.Role
	all  keywordSet
	any  keywordSet
	none keywordSet
}

func compileRules(rules []domain.Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, compiledRule{
			role: r.Role,
			all:  newKeywordSet(r.All),
			any:  newKeywordSet(r.Any),
			none: newKeywordSet(r.None),
		})
	}
	return out
}

func (r compiledRule) match(text string) bool {
	if !r.all.all(text) {
		return false
	}
	if len(r.any) > 0 && !r.any.any(text) {
		return false
	}
	return !r.none.any(text)
}

// headerText joins the normalized header cells of column col.
func headerText(g *Grid, header HeaderBlock, col int) string {
	parts := make([]string, 0, len(header.Rows))
	for _, r := range header.Rows {
		if v := NormalizeText(g.ValueAt(r, col)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// ClassifyColumns assigns roles to columns. Keyword rules run left to right
// in rule order and a role is claimed at most once; fallback positions then
// fill roles still missing. A missing required role is a structural error.
func ClassifyColumns(g *Grid, header HeaderBlock, d domain.Domain, log zerolog.Logger) (ColumnMap, error) {
	cm := newColumnMap()
	rules := compileRules(d.Rules)
	width := g.ColumnCount()

	for col := 0; col < width; col++ {
		text := headerText(g, header, col)
		if text == "" {
			continue
		}
		for _, rule := range rules {
			if cm.Has(rule.role) || !rule.match(text) {
				continue
			}
			cm.assign(Column{Role: rule.role, Index: col, Source: SourceKeyword, Header: text})
			break
		}
	}

	for _, fb := range d.Fallbacks {
		if cm.Has(fb.Role) || fb.Index >= width {
			continue
		}
		if _, taken := cm.Owner(fb.Index); taken {
			continue
		}
		cm.assign(Column{Role: fb.Role, Index: fb.Index, Source: SourceFallback, Header: headerText(g, header, fb.Index)})
		log.Warn().
			Str("domain", d.Name).
			Stringer("role", fb.Role).
			Int("column", fb.Index).
			Msg("column role resolved by position")
	}

	var missing []string
	for _, role := range d.Required {
		if !cm.Has(role) {
			missing = append(missing, role.String())
		}
	}
	if len(missing) > 0 {
		return cm, &StructuralError{
			Kind:    ErrMissingRequiredColumns,
			Message: fmt.Sprintf("required columns not found for %s", d.Name),
			Missing: missing,
		}
	}
	return cm, nil
}
