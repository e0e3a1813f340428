package domain

// Concept graph values. Names on ConceptNode and PrerequisiteEdge are
// normalized; DisplayName keeps the first-seen canonical casing.

type ConceptNode struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// PrerequisiteEdge means Source must be learned before Target.
type PrerequisiteEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

const (
	StatusLocked     = "LOCKED"
	StatusUnlocked   = "UNLOCKED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

const (
	RelPrerequisite = "prerequisite"
	RelDependent    = "dependent"
)

// GraphNode is one node of the user-facing graph view. Val is the visual
// weight: 10 + 2 x (links touching the node).
type GraphNode struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Val         int    `json:"val"`
}

type GraphLink struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

type GraphView struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

type NeighborNode struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
}

type NeighborEdge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

// Neighborhood is the immediate prerequisites and dependents of one concept,
// deduplicated by normalized name.
type Neighborhood struct {
	Nodes []NeighborNode `json:"nodes"`
	Edges []NeighborEdge `json:"edges"`
}
