package domain

import (
	"fmt"
	"math"
	"slices"
)

// Group execution modes.
const (
	ModeParallel   = "parallel"
	ModeSequential = "sequential"
)

// PlanItem is one unit of work fed to BuildPlan.
// Fields are ordered to minimize memory padding.
type PlanItem struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Scope       Scope    `json:"scope"`
	Cost        float64  `json:"cost"`
}

// PairConflict is a conflict between two plan items.
type PairConflict struct {
	A     string       `json:"a"`
	B     string       `json:"b"`
	Kind  ConflictKind `json:"kind"`
	Items []string     `json:"items"`
}

// PlanGroup is a set of items that may run side by side. Groups run in order.
type PlanGroup struct {
	Mode          string      `json:"mode"`
	Tasks         []string    `json:"tasks"`
	SoftConflicts [][2]string `json:"soft_conflicts,omitempty"`
	Index         int         `json:"index"`
	Layer         int         `json:"layer"`
	Cost          float64     `json:"cost"`
	Split         bool        `json:"split_by_conflict"`
}

// Plan is the execution plan for a batch of items.
type Plan struct {
	Dependencies   map[string][]string `json:"dependencies"`
	Items          []PlanItem          `json:"items"`
	Conflicts      []PairConflict      `json:"conflicts"`
	Groups         []PlanGroup         `json:"groups"`
	Warnings       []string            `json:"warnings,omitempty"`
	SequentialCost float64             `json:"sequential_cost"`
	ParallelCost   float64             `json:"parallel_cost"`
	SavingsPercent int                 `json:"savings_percent"`
	SessionsNeeded int                 `json:"sessions_needed"`
}

// Item returns the item with the given id.
func (p *Plan) Item(id string) (PlanItem, bool) {
	i := slices.IndexFunc(p.Items, func(it PlanItem) bool { return it.ID == id })
	if i < 0 {
		return PlanItem{}, false
	}
	return p.Items[i], true
}

// BuildPlan layers items by dependency and splits each layer into groups free
// of hard conflicts. Rule-inferred edges are added in input order; an edge that
// would close a cycle is dropped with a warning.
func BuildPlan(items []PlanItem, rules []DependencyRule) *Plan {
	p := &Plan{
		Items:        make([]PlanItem, len(items)),
		Dependencies: make(map[string][]string, len(items)),
	}
	ids := make(map[string]bool, len(items))
	for i, it := range items {
		if it.Cost <= 0 {
			it.Cost = 1
		}
		p.Items[i] = it
		ids[it.ID] = true
	}

	g := NewGraph()
	for _, it := range p.Items {
		var deps []string
		for _, d := range it.DependsOn {
			if ids[d] {
				deps = append(deps, d)
			}
		}
		g.AddNode(it.ID, deps)
	}
	for _, a := range p.Items {
		for _, b := range p.Items {
			if a.ID == b.ID || !a.Scope.SharesToken(b.Scope) {
				continue
			}
			for _, r := range rules {
				if !r.Applies(a.Description, b.Description) {
					continue
				}
				if slices.Contains(g.Deps(a.ID), b.ID) {
					break
				}
				if g.WouldCycle(a.ID, []string{b.ID}) {
					p.Warnings = append(p.Warnings, fmt.Sprintf("circular dependency %s -> %s ignored", a.ID, b.ID))
					break
				}
				g.AddEdge(a.ID, b.ID)
				break
			}
		}
	}
	for _, it := range p.Items {
		if deps := g.Deps(it.ID); len(deps) > 0 {
			p.Dependencies[it.ID] = deps
		}
	}

	hard := make(map[[2]string]bool)
	soft := make(map[[2]string]bool)
	for i := 0; i < len(p.Items); i++ {
		for j := i + 1; j < len(p.Items); j++ {
			a, b := p.Items[i], p.Items[j]
			c := Overlap(a.Scope, b.Scope)
			if c.Kind == ConflictNone {
				continue
			}
			p.Conflicts = append(p.Conflicts, PairConflict{A: a.ID, B: b.ID, Kind: c.Kind, Items: c.Items()})
			key := pairKey(a.ID, b.ID)
			if c.Kind == ConflictHard {
				hard[key] = true
			} else {
				soft[key] = true
			}
		}
	}

	for layer, members := range g.Layers() {
		groups := colorLayer(members, hard)
		for _, tasks := range groups {
			grp := PlanGroup{
				Index: len(p.Groups) + 1,
				Layer: layer,
				Tasks: tasks,
				Mode:  ModeSequential,
				Split: len(groups) > 1,
			}
			if len(tasks) > 1 {
				grp.Mode = ModeParallel
			}
			for i := 0; i < len(tasks); i++ {
				for j := i + 1; j < len(tasks); j++ {
					if soft[pairKey(tasks[i], tasks[j])] {
						grp.SoftConflicts = append(grp.SoftConflicts, [2]string{tasks[i], tasks[j]})
					}
				}
				it, _ := p.Item(tasks[i])
				grp.Cost = max(grp.Cost, it.Cost)
			}
			p.Groups = append(p.Groups, grp)
			p.ParallelCost += grp.Cost
			p.SessionsNeeded = max(p.SessionsNeeded, len(tasks))
		}
	}

	for _, it := range p.Items {
		p.SequentialCost += it.Cost
	}
	if p.SequentialCost > 0 {
		p.SavingsPercent = int(math.Round((p.SequentialCost - p.ParallelCost) / p.SequentialCost * 100))
	}
	return p
}

// colorLayer greedily assigns each member, in order, to the first group with
// no hard conflict against it.
func colorLayer(members []string, hard map[[2]string]bool) [][]string {
	var groups [][]string
	for _, m := range members {
		placed := false
		for gi, grp := range groups {
			clash := slices.ContainsFunc(grp, func(o string) bool { return hard[pairKey(m, o)] })
			if !clash {
				groups[gi] = append(groups[gi], m)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []string{m})
		}
	}
	return groups
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
