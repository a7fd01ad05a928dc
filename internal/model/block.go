// Package model defines domain models for the explorer block API.
package model

import (
	"strconv"
	"time"
)

// BlockNumber identifies a block; numbers strictly increase with block creation order.
type BlockNumber uint64

func (n BlockNumber) String() string {
	return strconv.FormatUint(uint64(n), 10)
}

// BlockStatus describes how far a block got in its lifecycle.
type BlockStatus string

const (
	// BlockCommitted marks a block that is committed but not verified yet.
	BlockCommitted BlockStatus = "committed"
	// BlockFinalized marks a verified block; its details never change again.
	BlockFinalized BlockStatus = "finalized"
)

// BlockDetails is a block record as persisted in storage.
type BlockDetails struct {
	Number       BlockNumber
	StateRoot    Hash
	Size         uint32
	CommitTxHash Hash
	VerifyTxHash *Hash
	CommittedAt  time.Time
	VerifiedAt   *time.Time
}

// IsFinalized reports whether the block has been verified.
func (b BlockDetails) IsFinalized() bool {
	return b.VerifyTxHash != nil && b.VerifiedAt != nil
}

// BlockInfo is the public shape of a block.
type BlockInfo struct {
	BlockNumber  BlockNumber `json:"blockNumber"`
	NewStateRoot Hash        `json:"newStateRoot"`
	BlockSize    uint32      `json:"blockSize"`
	CommitTxHash Hash        `json:"commitTxHash"`
	VerifyTxHash *Hash       `json:"verifyTxHash"`
	CommittedAt  time.Time   `json:"committedAt"`
	FinalizedAt  *time.Time  `json:"finalizedAt"`
	Status       BlockStatus `json:"status"`
}

// NewBlockInfo maps stored block details to the public block shape.
func NewBlockInfo(b BlockDetails) BlockInfo {
	status := BlockCommitted
	if b.IsFinalized() {
		status = BlockFinalized
	}

	return BlockInfo{
		BlockNumber:  b.Number,
		NewStateRoot: b.StateRoot,
		BlockSize:    b.Size,
		CommitTxHash: b.CommitTxHash,
		VerifyTxHash: b.VerifyTxHash,
		CommittedAt:  b.CommittedAt,
		FinalizedAt:  b.VerifiedAt,
		Status:       status,
	}
}
