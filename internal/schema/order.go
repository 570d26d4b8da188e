package schema

import (
	"fmt"
	"strings"
)

// Dependencies returns the wire names of the types referenced by def's
// fields, in field order and without duplicates.
func Dependencies(def TypeDefinition) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, t := range def.Types {
		elem := ElementType(t)
		if seen[elem] {
			continue
		}
		seen[elem] = true
		deps = append(deps, elem)
	}
	return deps
}

// SortTypes orders definitions so that every type comes after the custom
// types its fields reference. Declaration order is kept wherever it is
// already valid. References to types outside defs are ignored here.
// A self-referencing or mutually referencing set fails with ErrDependencyCycle.
func SortTypes(defs []TypeDefinition) ([]TypeDefinition, error) {
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		if _, ok := index[def.WireName()]; !ok {
			index[def.WireName()] = i
		}
	}

	// edges[i] lists the definitions i depends on
	edges := make([][]int, len(defs))
	pending := make([]int, len(defs))
	for i, def := range defs {
		for _, dep := range Dependencies(def) {
			if j, ok := index[dep]; ok {
				edges[i] = append(edges[i], j)
				pending[i]++
			}
		}
	}

	sorted := make([]TypeDefinition, 0, len(defs))
	done := make([]bool, len(defs))
	for len(sorted) < len(defs) {
		next := -1
		for i := range defs {
			if !done[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, describeCycle(defs, edges, done))
		}

		done[next] = true
		sorted = append(sorted, defs[next])
		for i := range defs {
			if done[i] {
				continue
			}
			for _, j := range edges[i] {
				if j == next {
					pending[i]--
				}
			}
		}
	}
	return sorted, nil
}

// describeCycle walks dependency edges among the unsorted definitions until
// a definition repeats and renders the loop as "a -> b -> a".
func describeCycle(defs []TypeDefinition, edges [][]int, done []bool) string {
	start := -1
	for i := range defs {
		if !done[i] {
			start = i
			break
		}
	}
	if start < 0 {
		return "unknown cycle"
	}

	visited := make(map[int]int)
	var path []int
	current := start
	for {
		if at, ok := visited[current]; ok {
			names := make([]string, 0, len(path)-at+1)
			for _, i := range path[at:] {
				names = append(names, defs[i].Name)
			}
			names = append(names, defs[current].Name)
			return strings.Join(names, " -> ")
		}
		visited[current] = len(path)
		path = append(path, current)

		next := -1
		for _, j := range edges[current] {
			if !done[j] {
				next = j
				break
			}
		}
		if next < 0 {
			return defs[current].Name
		}
		current = next
	}
}
