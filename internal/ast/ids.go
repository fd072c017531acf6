package ast

// NodeID indexes a Node inside its Tree; zero means "no node".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
