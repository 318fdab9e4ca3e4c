// Package models defines port-based workflow models for node connections.
package models

// PortDirection represents the direction of data flow for a port.
type PortDirection string

const (
	PortDirectionIn  PortDirection = "in"
	PortDirectionOut PortDirection = "out"
)

// Port represents a connection point on a node. Its ID is unique within the node.
type Port struct {
	ID        string        `json:"id"              yaml:"id"              validate:"required"`
	Label     string        `json:"label,omitempty" yaml:"label,omitempty"`
	Direction PortDirection `json:"direction"       yaml:"direction"       validate:"required,oneof=in out"`
}

// IsInput reports whether the port accepts incoming edges.
func (p Port) IsInput() bool {
	return p.Direction == PortDirectionIn
}

// IsOutput reports whether the port emits outgoing edges.
func (p Port) IsOutput() bool {
	return p.Direction == PortDirectionOut
}

// InPort is a shorthand constructor for an input port.
func InPort(id string) Port {
	return Port{ID: id, Direction: PortDirectionIn}
}

// OutPort is a shorthand constructor for an output port.
func OutPort(id string) Port {
	return Port{ID: id, Direction: PortDirectionOut}
}
