package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

// PositionKind tags a BlockPosition variant.
type PositionKind int

const (
	PositionNumeric PositionKind = iota
	PositionLastCommitted
	PositionLastFinalized
)

const (
	lastCommittedPosition = "last_committed"
	lastFinalizedPosition = "last_finalized"
)

// BlockPosition is a parsed block reference: a concrete number or a symbolic head.
type BlockPosition struct {
	Kind   PositionKind
	Number model.BlockNumber
}

// ParseBlockPosition accepts a decimal block number, "last_committed" or "last_finalized".
func ParseBlockPosition(s string) (BlockPosition, error) {
	if number, err := strconv.ParseUint(s, 10, 64); err == nil {
		return BlockPosition{Kind: PositionNumeric, Number: model.BlockNumber(number)}, nil
	}

	switch s {
	case lastCommittedPosition:
		return BlockPosition{Kind: PositionLastCommitted}, nil
	case lastFinalizedPosition:
		return BlockPosition{Kind: PositionLastFinalized}, nil
	default:
		return BlockPosition{}, InvalidInput(CodeInvalidBlockPosition, ErrInvalidBlockPosition, "invalid block position %q", s)
	}
}

func (p BlockPosition) String() string {
	switch p.Kind {
	case PositionLastCommitted:
		return lastCommittedPosition
	case PositionLastFinalized:
		return lastFinalizedPosition
	default:
		return p.Number.String()
	}
}

// BlockPositionResolver maps positions to block numbers.
// Symbolic positions hit storage on every call; heads move as blocks are produced.
type BlockPositionResolver struct {
	storage PositionStorage
}

// NewBlockPositionResolver constructs a BlockPositionResolver.
func NewBlockPositionResolver(storage PositionStorage) *BlockPositionResolver {
	return &BlockPositionResolver{storage: storage}
}

// Resolve returns the block number a position currently points at.
// Numeric positions are returned as is, without checking that the block exists.
func (r *BlockPositionResolver) Resolve(ctx context.Context, position BlockPosition) (model.BlockNumber, error) {
	var (
		number model.BlockNumber
		err    error
	)
	switch position.Kind {
	case PositionNumeric:
		return position.Number, nil
	case PositionLastCommitted:
		number, err = r.storage.LastCommittedBlockNumber(ctx)
	case PositionLastFinalized:
		number, err = r.storage.LastFinalizedBlockNumber(ctx)
	default:
		return 0, InvalidInput(CodeInvalidBlockPosition, ErrInvalidBlockPosition, "unknown block position kind %d", position.Kind)
	}
	if err != nil {
		return 0, storageFailure(ctx, fmt.Errorf("resolve %s: %w", position, err))
	}
	return number, nil
}

// ResolveString parses and resolves a textual position.
func (r *BlockPositionResolver) ResolveString(ctx context.Context, s string) (model.BlockNumber, error) {
	position, err := ParseBlockPosition(s)
	if err != nil {
		return 0, err
	}
	return r.Resolve(ctx, position)
}
