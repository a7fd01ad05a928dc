package clickhouse

import (
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
)

const blockColumns = `
	number,
	state_root,
	block_size,
	commit_tx_hash,
	verify_tx_hash,
	committed_at,
	verified_at`

const transactionColumns = `
	tx_hash,
	block_number,
	block_index,
	kind,
	success,
	fail_reason,
	created_at`

func scanBlock(rows driver.Rows) (model.BlockDetails, error) {
	var (
		block        model.BlockDetails
		number       uint64
		stateRoot    string
		commitTxHash string
		verifyTxHash *string
		verifiedAt   *time.Time
	)
	if err := rows.Scan(
		&number,
		&stateRoot,
		&block.Size,
		&commitTxHash,
		&verifyTxHash,
		&block.CommittedAt,
		&verifiedAt,
	); err != nil {
		return model.BlockDetails{}, fmt.Errorf("scan block: %w", err)
	}

	var err error
	block.Number = model.BlockNumber(number)
	if block.StateRoot, err = model.ParseHash(stateRoot); err != nil {
		return model.BlockDetails{}, fmt.Errorf("block %d state root: %w", number, err)
	}
	if block.CommitTxHash, err = model.ParseHash(commitTxHash); err != nil {
		return model.BlockDetails{}, fmt.Errorf("block %d commit tx hash: %w", number, err)
	}
	if verifyTxHash != nil {
		hash, err := model.ParseHash(*verifyTxHash)
		if err != nil {
			return model.BlockDetails{}, fmt.Errorf("block %d verify tx hash: %w", number, err)
		}
		block.VerifyTxHash = &hash
	}
	block.VerifiedAt = verifiedAt

	return block, nil
}

func scanTransaction(rows driver.Rows) (model.Transaction, error) {
	var (
		tx          model.Transaction
		hash        string
		blockNumber uint64
	)
	if err := rows.Scan(
		&hash,
		&blockNumber,
		&tx.BlockIndex,
		&tx.Kind,
		&tx.Success,
		&tx.FailReason,
		&tx.CreatedAt,
	); err != nil {
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	var err error
	if tx.TxHash, err = model.ParseHash(hash); err != nil {
		return model.Transaction{}, fmt.Errorf("transaction hash: %w", err)
	}
	tx.BlockNumber = model.BlockNumber(blockNumber)

	return tx, nil
}
