// Package filter narrows and orders requirements for the admin dashboard.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/umalmyha/leads/internal/model"
)

type budgetBound struct {
	value float64
	set   bool
}

func parseBound(raw string) budgetBound {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return budgetBound{}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return budgetBound{}
	}
	return budgetBound{value: v, set: true}
}

// Apply returns requirements matching every criterion, input order is preserved
func Apply(requirements []*model.Requirement, c model.Criteria) []*model.Requirement {
	search := strings.ToLower(c.Search)
	minBudget := parseBound(c.MinBudget)
	maxBudget := parseBound(c.MaxBudget)

	res := make([]*model.Requirement, 0, len(requirements))
	for _, r := range requirements {
		if search != "" && !matchesSearch(r, search) {
			continue
		}

		if c.Status != "" && string(r.Status) != c.Status {
			continue
		}

		if c.LookingFor != "" && string(r.LookingFor) != c.LookingFor {
			continue
		}

		if minBudget.set && r.Budget < minBudget.value {
			continue
		}

		if maxBudget.set && r.Budget > maxBudget.value {
			continue
		}

		res = append(res, r)
	}
	return res
}

func matchesSearch(r *model.Requirement, token string) bool {
	return strings.Contains(strings.ToLower(r.Name), token) ||
		strings.Contains(strings.ToLower(r.CurrentLocation), token) ||
		strings.Contains(strings.ToLower(r.PreferredLocation), token)
}

// Sort orders requirements in place by field, ties keep their order.
// Empty field leaves requirements untouched, empty order means ascending.
func Sort(requirements []*model.Requirement, field model.SortField, order model.SortOrder) {
	var less func(a, b *model.Requirement) bool
	switch field {
	case model.SortByCreatedAt:
		less = func(a, b *model.Requirement) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case model.SortByBudget:
		less = func(a, b *model.Requirement) bool { return a.Budget < b.Budget }
	case model.SortByFlatSize:
		less = func(a, b *model.Requirement) bool { return a.FlatSize < b.FlatSize }
	default:
		return
	}

	sort.SliceStable(requirements, func(i, j int) bool {
		if order == model.SortDesc {
			return less(requirements[j], requirements[i])
		}
		return less(requirements[i], requirements[j])
	})
}
