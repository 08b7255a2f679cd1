package types

// PartitionName is one of the two variable collections of an NVRAM partition.
type PartitionName string

const (
	PartitionCommon PartitionName = "common"
	PartitionSystem PartitionName = "system"
)

// Partitions lists the collections in dump order.
var Partitions = []PartitionName{PartitionCommon, PartitionSystem}

// Valid reports whether p names a known collection.
func (p PartitionName) Valid() bool {
	return p == PartitionCommon || p == PartitionSystem
}
