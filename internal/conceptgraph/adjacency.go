// Package conceptgraph provides read-only queries over the directed
// prerequisite graph of concepts: root detection, shortest path from any
// root, existence and neighborhood lookups.
//
// The graph is materialized as an explicit adjacency structure keyed by
// normalized concept name, and traversals are plain BFS. Traversal is
// cycle-safe (a visited set bounds every walk); a fully cyclic component has
// no roots and its members resolve as unreachable.
package conceptgraph

import (
	"sort"

	"github.com/lodestar-learning/lodestar-backend/internal/domain"
	"github.com/lodestar-learning/lodestar-backend/internal/normalization"
)

// Adjacency is an immutable snapshot of the concept graph. Build one with
// NewAdjacency; all methods are safe for concurrent use.
type Adjacency struct {
	nodes map[string]domain.ConceptNode
	order []string
	out   map[string][]string // prerequisite -> dependents
	in    map[string][]string // concept -> prerequisites
	edges []domain.PrerequisiteEdge
}

// NewAdjacency normalizes node and edge names, keeps the first-seen display
// form per normalized name, and drops self-loops, duplicate edges and edges
// whose endpoints are not in the node set.
func NewAdjacency(nodes []domain.ConceptNode, edges []domain.PrerequisiteEdge) *Adjacency {
	g := &Adjacency{
		nodes: make(map[string]domain.ConceptNode, len(nodes)),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}

	for _, n := range nodes {
		name := normalization.ConceptName(n.Name)
		if name == "" {
			continue
		}
		existing, ok := g.nodes[name]
		if !ok {
			display := n.DisplayName
			if display == "" {
				display = n.Name
			}
			g.nodes[name] = domain.ConceptNode{
				Name:        name,
				DisplayName: display,
				Description: n.Description,
			}
			g.order = append(g.order, name)
			continue
		}
		// First-seen casing wins; fill the description only if missing.
		if existing.Description == "" && n.Description != "" {
			existing.Description = n.Description
			g.nodes[name] = existing
		}
	}
	sort.Strings(g.order)

	type edgeKey struct{ src, dst string }
	seen := make(map[edgeKey]struct{}, len(edges))
	for _, e := range edges {
		src := normalization.ConceptName(e.Source)
		dst := normalization.ConceptName(e.Target)
		if src == "" || dst == "" || src == dst {
			continue
		}
		if _, ok := g.nodes[src]; !ok {
			continue
		}
		if _, ok := g.nodes[dst]; !ok {
			continue
		}
		k := edgeKey{src, dst}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		g.out[src] = append(g.out[src], dst)
		g.in[dst] = append(g.in[dst], src)
		g.edges = append(g.edges, domain.PrerequisiteEdge{Source: src, Target: dst})
	}
	for _, adj := range g.out {
		sort.Strings(adj)
	}
	for _, adj := range g.in {
		sort.Strings(adj)
	}
	sort.Slice(g.edges, func(i, j int) bool {
		if g.edges[i].Source != g.edges[j].Source {
			return g.edges[i].Source < g.edges[j].Source
		}
		return g.edges[i].Target < g.edges[j].Target
	})

	return g
}

// Roots returns the concepts with no incoming prerequisite edge, sorted by
// normalized name.
func (g *Adjacency) Roots() []string {
	roots := make([]string, 0, len(g.order))
	for _, name := range g.order {
		if len(g.in[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

func (g *Adjacency) Exists(name string) bool {
	_, ok := g.nodes[normalization.ConceptName(name)]
	return ok
}

func (g *Adjacency) Node(name string) (domain.ConceptNode, bool) {
	n, ok := g.nodes[normalization.ConceptName(name)]
	return n, ok
}

// Nodes returns every concept sorted by normalized name.
func (g *Adjacency) Nodes() []domain.ConceptNode {
	out := make([]domain.ConceptNode, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

func (g *Adjacency) Edges() []domain.PrerequisiteEdge {
	out := make([]domain.PrerequisiteEdge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Prerequisites returns the immediate prerequisites of a concept, sorted.
func (g *Adjacency) Prerequisites(name string) []string {
	adj := g.in[normalization.ConceptName(name)]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

// Dependents returns the concepts that list name as a prerequisite, sorted.
func (g *Adjacency) Dependents(name string) []string {
	adj := g.out[normalization.ConceptName(name)]
	out := make([]string, len(adj))
	copy(out, adj)
	return out
}

// Degree counts the prerequisite edges touching a concept in either
// direction.
func (g *Adjacency) Degree(name string) int {
	n := normalization.ConceptName(name)
	return len(g.in[n]) + len(g.out[n])
}

// ShortestPathFromAnyRoot returns a fewest-edges directed path from some root
// to target, inclusive. A target with no prerequisites is its own root and
// yields [target]. Returns nil when the target is absent or unreachable from
// every root.
//
// Ties between equal-length paths are broken deterministically: roots and
// neighbors are expanded in lexicographic order of normalized name, so the
// lexicographically smallest chain wins.
func (g *Adjacency) ShortestPathFromAnyRoot(target string) []string {
	t := normalization.ConceptName(target)
	if _, ok := g.nodes[t]; !ok {
		return nil
	}
	if len(g.in[t]) == 0 {
		return []string{t}
	}

	queue := make([]string, 0, len(g.order))
	parent := make(map[string]string, len(g.order))
	visited := make(map[string]struct{}, len(g.order))
	for _, root := range g.Roots() {
		queue = append(queue, root)
		visited[root] = struct{}{}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == t {
			return g.rebuildPath(parent, t)
		}
		for _, next := range g.out[cur] {
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

func (g *Adjacency) rebuildPath(parent map[string]string, target string) []string {
	path := []string{target}
	for {
		p, ok := parent[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Neighborhood returns the immediate prerequisites and dependents of a
// concept with labeled edges, or nil when the concept is absent.
func (g *Adjacency) Neighborhood(name string) *domain.Neighborhood {
	n := normalization.ConceptName(name)
	if _, ok := g.nodes[n]; !ok {
		return nil
	}

	nb := &domain.Neighborhood{
		Nodes: []domain.NeighborNode{},
		Edges: []domain.NeighborEdge{},
	}
	added := make(map[string]struct{})
	addNode := func(name string) {
		if _, ok := added[name]; ok {
			return
		}
		added[name] = struct{}{}
		node := g.nodes[name]
		nb.Nodes = append(nb.Nodes, domain.NeighborNode{
			Name:        node.Name,
			DisplayName: node.DisplayName,
			Description: node.Description,
		})
	}

	for _, p := range g.in[n] {
		addNode(p)
		nb.Edges = append(nb.Edges, domain.NeighborEdge{
			Source:       p,
			Target:       n,
			Relationship: domain.RelPrerequisite,
		})
	}
	for _, d := range g.out[n] {
		addNode(d)
		nb.Edges = append(nb.Edges, domain.NeighborEdge{
			Source:       n,
			Target:       d,
			Relationship: domain.RelDependent,
		})
	}
	return nb
}
