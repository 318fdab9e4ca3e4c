package models

// Endpoint addresses a port on a node.
type Endpoint struct {
	NodeID string `json:"nodeId" yaml:"nodeId" validate:"required"`
	PortID string `json:"portId" yaml:"portId" validate:"required"`
}

// Edge is a directed connection from an output port to an input port. Neither end is
// guaranteed to exist; validation checks that.
type Edge struct {
	ID    string   `json:"id"              yaml:"id"              validate:"required"`
	From  Endpoint `json:"from"            yaml:"from"`
	To    Endpoint `json:"to"              yaml:"to"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
}
