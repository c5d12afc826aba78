package model

import "sort"

// Endpoints declares the label pair a sub-type expects: the source node
// must carry Source and the destination node must carry Target.
type Endpoints struct {
	Source string `toml:"source" json:"source"`
	Target string `toml:"target" json:"target"`
}

// Relations is the caller-supplied classification table: relationship type
// name -> logical sub-type name -> expected endpoint labels. It is static
// configuration, not derived from the graph, and is validated lazily — a
// gap only surfaces when classification meets a relationship type that has
// no entry.
type Relations map[string]map[string]Endpoints

// Types returns the declared relationship type names in lexical order.
func (r Relations) Types() []string {
	types := make([]string, 0, len(r))
	for relType := range r {
		types = append(types, relType)
	}
	sort.Strings(types)
	return types
}

// SubTypes returns the sub-type names declared for a relationship type in
// lexical order.
func (r Relations) SubTypes(relType string) []string {
	def, ok := r[relType]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(def))
	for name := range def {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
