package model

import "fmt"

// Direction tells pagination which side of the cursor to read.
type Direction string

const (
	// DirectionNewer selects items after the cursor.
	DirectionNewer Direction = "newer"
	// DirectionOlder selects items before the cursor.
	DirectionOlder Direction = "older"
)

// ParseDirection validates a direction literal.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionNewer, DirectionOlder:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// PaginationQuery asks for up to Limit items on one side of From.
type PaginationQuery[C any] struct {
	From      C
	Limit     uint32
	Direction Direction
}

// Paginated is one page of items plus the total count of the paginated scope.
type Paginated[T, C any] struct {
	List      []T       `json:"list"`
	Count     uint64    `json:"count"`
	Limit     uint32    `json:"limit"`
	Direction Direction `json:"direction"`
	From      C         `json:"from"`
}

// BlockAndTxHash locates a transaction inside one block.
type BlockAndTxHash struct {
	BlockNumber BlockNumber `json:"blockNumber"`
	TxHash      TxHash      `json:"txHash"`
}
