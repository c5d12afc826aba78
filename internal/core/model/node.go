package model

// Node is the decoded shape of a store node: the store's stable identity,
// the labels it carries, and its property map. Labels are order-insignificant
// and never empty for nodes the store returns.
type Node struct {
	ID     int64          `json:"id"`
	Labels []string       `json:"labels"`
	Props  map[string]any `json:"props,omitempty"`
}
