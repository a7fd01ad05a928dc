package model

import "time"

// Transaction is an executed transaction; it belongs to exactly one block.
type Transaction struct {
	TxHash      TxHash      `json:"txHash"`
	BlockNumber BlockNumber `json:"blockNumber"`
	BlockIndex  uint32      `json:"blockIndex"`
	Kind        string      `json:"kind"`
	Success     bool        `json:"success"`
	FailReason  *string     `json:"failReason"`
	CreatedAt   time.Time   `json:"createdAt"`
}
