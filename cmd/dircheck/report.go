package main

import (
	"context"
	"fmt"

	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/domain"
)

type categoryCount struct {
	category domain.Category
	label    string
	n        int
}

type report struct {
	counts     []categoryCount
	unresolved []string
	gaps       []string
}

func (r *report) passed() bool {
	return len(r.unresolved) == 0 && len(r.gaps) == 0
}

// check walks every category in display order. A store failure aborts the
// check; everything else is collected as a finding.
func check(ctx context.Context, dir *directory.Service, hasForm func(domain.Category) bool) (*report, error) {
	cities, err := dir.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		names[c.ID.String()] = c.Name
	}

	rep := &report{}
	for _, c := range domain.Categories {
		if !hasForm(c) {
			rep.gaps = append(rep.gaps, fmt.Sprintf("%s: no form definition", c))
		}
		if _, ok := dir.Renderer(c); !ok {
			rep.gaps = append(rep.gaps, fmt.Sprintf("%s: no card renderer", c))
		}

		records, err := dir.List(ctx, c, "")
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", c.Collection(), err)
		}
		rep.counts = append(rep.counts, categoryCount{category: c, label: c.SectionLabel(), n: len(records)})

		for _, rec := range records {
			if directory.CityName(names, rec) != directory.UnresolvedCity {
				continue
			}
			b := rec.Base()
			rep.unresolved = append(rep.unresolved,
				fmt.Sprintf("%s id=%s: cidade_id %q has no match", c.Collection(), b.ID.String(), b.CityID.String()))
		}
	}
	return rep, nil
}
