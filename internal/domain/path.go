package domain

// LearningPath is the computed study plan for one resolution call. It is
// never persisted. TargetConcept is reassigned to the last kept concept when
// the path had to be pruned to fit the time budget.
type LearningPath struct {
	Concepts             []string `json:"concepts"`
	EstimatedTimeMinutes int      `json:"estimated_time_minutes"`
	TargetConcept        string   `json:"target_concept"`
	Pruned               bool     `json:"pruned"`
}
