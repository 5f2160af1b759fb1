// Package project folds a solved assignment back into the nested and flat report shapes
// external callers consume (C8).
package project

import (
	"sort"

	"github.com/rosterc/rosterc/pkg/roster"
	"github.com/rosterc/rosterc/pkg/solve"
)

// Schedule is the nested view: data[day][site][shift] = [employee ids, spec order],
// plus a parallel rest map the site grouping omits the rest label from (§4.8).
type Schedule struct {
	Data map[string]map[string]map[string][]string `json:"data"`
	Rest map[string][]string                       `json:"rest"`
}

// FlatRow is one record of the flat view, sorted by (date, site, shift, employee), each
// by spec order (§4.8).
type FlatRow struct {
	Date     string `json:"date"`
	Site     string `json:"site"`
	Shift    string `json:"shift"`
	Employee string `json:"employee"`
}

// Project folds outcome.Assignment into the nested and flat views. spec is the normalized
// spec, used to recover each demand entry's (day,shift)->site ownership and the spec-order
// index maps the sort needs.
func Project(spec *roster.NormalizedSpec, outcome *solve.Outcome) (*Schedule, []FlatRow) {
	siteOf := make(map[string]map[string]string, len(spec.Demand)) // day -> shift -> site
	for _, d := range spec.Demand {
		if siteOf[d.Day] == nil {
			siteOf[d.Day] = map[string]string{}
		}
		siteOf[d.Day][d.Shift] = d.Site
	}

	empOrder := indexOf(spec.Sets.Employees)
	siteOrder := indexOf(spec.Sets.Sites)
	shiftOrder := indexOf(spec.Sets.Shifts)

	schedule := &Schedule{
		Data: map[string]map[string]map[string][]string{},
		Rest: map[string][]string{},
	}

	type rowKey struct{ date, site, shift, employee string }
	rows := make([]rowKey, 0)

	for _, e := range spec.Sets.Employees {
		byDay := outcome.Assignment[e]
		for _, d := range spec.Sets.Days {
			bySh := byDay[d]
			for s, on := range bySh {
				if !on {
					continue
				}
				if s == roster.RestShift {
					schedule.Rest[d] = append(schedule.Rest[d], e)
					continue
				}
				site, ok := siteOf[d][s]
				if !ok {
					continue // shift worked on a day/shift with no demand entry owns no site grouping
				}
				if schedule.Data[d] == nil {
					schedule.Data[d] = map[string]map[string][]string{}
				}
				if schedule.Data[d][site] == nil {
					schedule.Data[d][site] = map[string][]string{}
				}
				schedule.Data[d][site][s] = append(schedule.Data[d][site][s], e)
				rows = append(rows, rowKey{date: d, site: site, shift: s, employee: e})
			}
		}
	}

	for day := range schedule.Rest {
		sortBySpecOrder(schedule.Rest[day], empOrder)
	}
	for _, siteMap := range schedule.Data {
		for _, shiftMap := range siteMap {
			for shift := range shiftMap {
				sortBySpecOrder(shiftMap[shift], empOrder)
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.date != b.date {
			return a.date < b.date
		}
		if siteOrder[a.site] != siteOrder[b.site] {
			return siteOrder[a.site] < siteOrder[b.site]
		}
		if shiftOrder[a.shift] != shiftOrder[b.shift] {
			return shiftOrder[a.shift] < shiftOrder[b.shift]
		}
		return empOrder[a.employee] < empOrder[b.employee]
	})

	flat := make([]FlatRow, len(rows))
	for i, r := range rows {
		flat[i] = FlatRow{Date: r.date, Site: r.site, Shift: r.shift, Employee: r.employee}
	}

	return schedule, flat
}

func indexOf(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func sortBySpecOrder(ids []string, order map[string]int) {
	sort.Slice(ids, func(i, j int) bool { return order[ids[i]] < order[ids[j]] })
}
