package model

// RawEdge is one relationship occurrence as reported by the store, before
// classification. Endpoint labels are captured at extraction time so the
// classifier never reaches back to the store.
type RawEdge struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	SrcID     int64          `json:"src_id"`
	DstID     int64          `json:"dst_id"`
	Props     map[string]any `json:"props,omitempty"`
	SrcLabels []string       `json:"src_labels"`
	DstLabels []string       `json:"dst_labels"`
}

// ClassifiedEdge is a raw edge after its label pair resolved to a sub-type.
// Direction is the store's direction, preserved as-is.
type ClassifiedEdge struct {
	SrcID int64          `json:"src_id"`
	DstID int64          `json:"dst_id"`
	Props map[string]any `json:"props,omitempty"`
}

// Path is one traversal result row: the nodes it visits and the
// relationships it crosses, both fully decoded.
type Path struct {
	Nodes []Node
	Edges []RawEdge
}
