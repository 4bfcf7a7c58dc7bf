package crud

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm/schema"
)

// graphInfo is the memoized verdict for one model type's association graph.
type graphInfo struct {
	// cyclic is true when the graph contains a navigation loop.
	cyclic bool
	// preloads holds every nested association path, only for acyclic graphs.
	preloads []string
}

var (
	// parsedSchemas backs schema.Parse; shared so models are parsed once.
	parsedSchemas sync.Map
	// graphVerdicts maps a model reflect.Type to its graphInfo. Entries are
	// never removed: schema metadata cannot change within a process, and a
	// runtime fallback only ever tightens the verdict to cyclic.
	graphVerdicts sync.Map
)

// analyzeGraph computes (or recalls) the association graph verdict for T.
// Concurrent callers may both compute the verdict for a fresh type; that is
// benign since the result is identical and the map write idempotent.
func analyzeGraph[T any](namer schema.Namer) (graphInfo, error) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := graphVerdicts.Load(key); ok {
		return v.(graphInfo), nil
	}

	model := new(T)
	s, err := schema.Parse(model, &parsedSchemas, namer)
	if err != nil {
		return graphInfo{}, err
	}

	var info graphInfo
	if hasCycle(s, map[*schema.Schema]int{}) {
		info.cyclic = true
	} else {
		info.preloads = preloadPaths(s, "", map[*schema.Schema]bool{s: true})
	}

	graphVerdicts.Store(key, info)
	return info, nil
}

// markCyclic permanently switches T to the shallow preload strategy.
func markCyclic[T any]() {
	key := reflect.TypeOf((*T)(nil)).Elem()
	graphVerdicts.Store(key, graphInfo{cyclic: true})
}

// hasCycle runs a coloring DFS over the relationship graph.
// state: 0 = unvisited, 1 = on the current path, 2 = finished.
func hasCycle(s *schema.Schema, state map[*schema.Schema]int) bool {
	state[s] = 1
	for _, name := range sortedRelationNames(s) {
		target := s.Relationships.Relations[name].FieldSchema
		if target == nil {
			continue
		}
		switch state[target] {
		case 1:
			return true
		case 0:
			if hasCycle(target, state) {
				return true
			}
		}
	}
	state[s] = 2
	return false
}

// preloadPaths enumerates every dotted association path reachable from s.
// Only called for acyclic graphs, so the walk terminates; seen guards
// against revisiting a schema on the current path through diamond shapes.
func preloadPaths(s *schema.Schema, prefix string, seen map[*schema.Schema]bool) []string {
	var out []string
	for _, name := range sortedRelationNames(s) {
		rel := s.Relationships.Relations[name]

		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		out = append(out, path)

		target := rel.FieldSchema
		if target == nil || seen[target] {
			continue
		}
		seen[target] = true
		out = append(out, preloadPaths(target, path, seen)...)
		delete(seen, target)
	}
	return out
}

// sortedRelationNames returns relation field names in stable order, since
// map iteration order would otherwise leak into preload ordering.
// Relations with a "_" prefix are gorm's internal back references for
// has-many ownership; they self-point and are not user navigations.
func sortedRelationNames(s *schema.Schema) []string {
	names := make([]string, 0, len(s.Relationships.Relations))
	for name := range s.Relationships.Relations {
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
