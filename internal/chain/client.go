// Package chain reads darkpool facts from an EVM node: contract logs for the
// listener and backfill, and transaction calldata for turning a single fact
// into the state change it describes.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

//go:generate mockgen -source=client.go -destination=../mocks/chain.go -package=mocks -mock_names=Client=MockChainClient

// Client reads darkpool facts from the chain.
//
// RPC failures are returned as transient errors. A transaction that does not
// contain the fact it is asked about is a data error.
type Client interface {
	// LatestBlock returns the chain head
	LatestBlock(ctx context.Context) (uint64, error)
	// FilterEvents returns darkpool events in [from, to], ordered by block and log index
	FilterEvents(ctx context.Context, from, to uint64) ([]Event, error)

	// RecoveryIDRegistration resolves a recovery ID registration in a transaction
	RecoveryIDRegistration(ctx context.Context, recoveryID domain.Scalar, txHash common.Hash) (*RecoveryIDRegistration, error)
	// NullifierSpend resolves a nullifier spend in a transaction
	NullifierSpend(ctx context.Context, nullifier domain.Scalar, txHash common.Hash) (*NullifierSpend, error)
	// PublicIntentCreation resolves the first fill of a public intent
	PublicIntentCreation(ctx context.Context, hash common.Hash, txHash common.Hash) (*PublicIntentCreation, error)
	// PublicIntentUpdate resolves a later fill of a public intent
	PublicIntentUpdate(ctx context.Context, hash common.Hash, version uint64, txHash common.Hash) (*PublicIntentUpdate, error)
	// PublicIntentCancellation resolves a public intent cancellation
	PublicIntentCancellation(ctx context.Context, hash common.Hash, version uint64, txHash common.Hash) (*PublicIntentCancellation, error)

	// FindRecoveryIDRegistration returns the registration event of a recovery ID, or nil if it was never registered
	FindRecoveryIDRegistration(ctx context.Context, recoveryID domain.Scalar) (*Event, error)
	// FindNullifierSpend returns the spend event of a nullifier, or nil if it is unspent
	FindNullifierSpend(ctx context.Context, nullifier domain.Scalar) (*Event, error)
	// PublicIntentEventsByOwner returns every public intent event of an owner in chain order
	PublicIntentEventsByOwner(ctx context.Context, owner common.Address) ([]Event, error)

	// Close closes the connection
	Close()
}

// Config holds the darkpool contract location
type Config struct {
	DarkpoolAddress common.Address
	// DeployBlock bounds historical log queries
	DeployBlock uint64
	// MaxBlockRange is the widest range a single eth_getLogs call covers
	MaxBlockRange uint64
}

type client struct {
	eth adapter.EthClient
	cfg Config
}

// NewClient creates a darkpool client over an Ethereum RPC connection
func NewClient(eth adapter.EthClient, cfg Config) Client {
	if cfg.MaxBlockRange == 0 {
		cfg.MaxBlockRange = 10_000
	}
	return &client{eth: eth, cfg: cfg}
}

func (c *client) LatestBlock(ctx context.Context) (uint64, error) {
	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, domain.NewTransientError("latest block", err)
	}
	return header.Number.Uint64(), nil
}

func (c *client) FilterEvents(ctx context.Context, from, to uint64) ([]Event, error) {
	if from > to {
		return nil, nil
	}

	logs, err := c.filterLogs(ctx, from, to, [][]common.Hash{allTopics})
	if err != nil {
		return nil, err
	}
	return c.parseLogs(ctx, logs), nil
}

func (c *client) RecoveryIDRegistration(ctx context.Context, recoveryID domain.Scalar, txHash common.Hash) (*RecoveryIDRegistration, error) {
	const op = "resolve recovery id registration"

	call, receipt, err := c.transaction(ctx, op, txHash, topicRecoveryIDRegistered, scalarTopic(recoveryID))
	if err != nil {
		return nil, err
	}

	reg, err := call.recoveryIDRegistration(recoveryID)
	if err != nil {
		return nil, domain.NewDataError(op, fmt.Errorf("recovery id %s in tx %s: %w", recoveryID, txHash.Hex(), err))
	}

	reg.TxHash = txHash
	reg.BlockNumber = receipt.BlockNumber.Uint64()
	return reg, nil
}

func (c *client) NullifierSpend(ctx context.Context, nullifier domain.Scalar, txHash common.Hash) (*NullifierSpend, error) {
	const op = "resolve nullifier spend"

	call, receipt, err := c.transaction(ctx, op, txHash, topicNullifierSpent, scalarTopic(nullifier))
	if err != nil {
		return nil, err
	}

	spend, err := call.nullifierSpend(nullifier)
	if err != nil {
		return nil, domain.NewDataError(op, fmt.Errorf("nullifier %s in tx %s: %w", nullifier, txHash.Hex(), err))
	}

	spend.TxHash = txHash
	spend.BlockNumber = receipt.BlockNumber.Uint64()
	return spend, nil
}

func (c *client) PublicIntentCreation(ctx context.Context, hash common.Hash, txHash common.Hash) (*PublicIntentCreation, error) {
	const op = "resolve public intent creation"

	call, receipt, err := c.transaction(ctx, op, txHash, topicPublicIntentCreated, hash)
	if err != nil {
		return nil, err
	}

	intent, fill, err := call.publicIntentFill(hash)
	if err != nil {
		return nil, domain.NewDataError(op, fmt.Errorf("intent %s in tx %s: %w", hash.Hex(), txHash.Hex(), err))
	}

	return &PublicIntentCreation{
		IntentHash:  hash,
		Intent:      *intent,
		FillAmount:  fill,
		BlockNumber: receipt.BlockNumber.Uint64(),
		TxHash:      txHash,
	}, nil
}

func (c *client) PublicIntentUpdate(ctx context.Context, hash common.Hash, version uint64, txHash common.Hash) (*PublicIntentUpdate, error) {
	const op = "resolve public intent update"

	call, receipt, err := c.transaction(ctx, op, txHash, topicPublicIntentUpdated, hash)
	if err != nil {
		return nil, err
	}
	if err := c.requireVersion(receipt, topicPublicIntentUpdated, hash, version); err != nil {
		return nil, domain.NewDataError(op, err)
	}

	_, fill, err := call.publicIntentFill(hash)
	if err != nil {
		return nil, domain.NewDataError(op, fmt.Errorf("intent %s in tx %s: %w", hash.Hex(), txHash.Hex(), err))
	}

	return &PublicIntentUpdate{
		IntentHash:  hash,
		Version:     version,
		FillAmount:  fill,
		BlockNumber: receipt.BlockNumber.Uint64(),
		TxHash:      txHash,
	}, nil
}

func (c *client) PublicIntentCancellation(ctx context.Context, hash common.Hash, version uint64, txHash common.Hash) (*PublicIntentCancellation, error) {
	const op = "resolve public intent cancellation"

	receipt, err := c.receipt(ctx, op, txHash, topicPublicIntentCancelled, hash)
	if err != nil {
		return nil, err
	}
	if err := c.requireVersion(receipt, topicPublicIntentCancelled, hash, version); err != nil {
		return nil, domain.NewDataError(op, err)
	}

	return &PublicIntentCancellation{
		IntentHash:  hash,
		Version:     version,
		BlockNumber: receipt.BlockNumber.Uint64(),
		TxHash:      txHash,
	}, nil
}

func (c *client) FindRecoveryIDRegistration(ctx context.Context, recoveryID domain.Scalar) (*Event, error) {
	return c.findFirst(ctx, topicRecoveryIDRegistered, scalarTopic(recoveryID))
}

func (c *client) FindNullifierSpend(ctx context.Context, nullifier domain.Scalar) (*Event, error) {
	return c.findFirst(ctx, topicNullifierSpent, scalarTopic(nullifier))
}

func (c *client) PublicIntentEventsByOwner(ctx context.Context, owner common.Address) ([]Event, error) {
	latest, err := c.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := c.filterLogs(ctx, c.cfg.DeployBlock, latest, [][]common.Hash{
		publicIntentTopics,
		nil,
		{common.BytesToHash(owner.Bytes())},
	})
	if err != nil {
		return nil, err
	}
	return c.parseLogs(ctx, logs), nil
}

func (c *client) Close() {
	c.eth.Close()
}

// transaction loads a darkpool transaction, checks that its receipt carries the
// expected log, and decodes its calldata
func (c *client) transaction(ctx context.Context, op string, txHash common.Hash, topic, key common.Hash) (*decodedCall, *types.Receipt, error) {
	receipt, err := c.receipt(ctx, op, txHash, topic, key)
	if err != nil {
		return nil, nil, err
	}

	tx, pending, err := c.eth.TransactionByHash(ctx, txHash)
	if err != nil {
		return nil, nil, domain.NewTransientError(op, fmt.Errorf("failed to get transaction %s: %w", txHash.Hex(), err))
	}
	if pending {
		return nil, nil, domain.NewTransientError(op, fmt.Errorf("transaction %s is pending", txHash.Hex()))
	}
	if tx.To() == nil || *tx.To() != c.cfg.DarkpoolAddress {
		return nil, nil, domain.NewDataError(op, fmt.Errorf("transaction %s does not call the darkpool", txHash.Hex()))
	}

	call, err := decodeCall(tx.Data())
	if err != nil {
		return nil, nil, domain.NewDataError(op, fmt.Errorf("transaction %s: %w", txHash.Hex(), err))
	}

	return call, receipt, nil
}

func (c *client) receipt(ctx context.Context, op string, txHash common.Hash, topic, key common.Hash) (*types.Receipt, error) {
	receipt, err := c.eth.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, domain.NewTransientError(op, fmt.Errorf("failed to get receipt of %s: %w", txHash.Hex(), err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, domain.NewDataError(op, fmt.Errorf("transaction %s reverted", txHash.Hex()))
	}
	if c.findLog(receipt, topic, key) == nil {
		return nil, domain.NewDataError(op, fmt.Errorf("transaction %s emitted no matching event", txHash.Hex()))
	}

	return receipt, nil
}

func (c *client) findLog(receipt *types.Receipt, topic, key common.Hash) *types.Log {
	for _, l := range receipt.Logs {
		if l.Address != c.cfg.DarkpoolAddress || len(l.Topics) < 2 {
			continue
		}
		if l.Topics[0] == topic && l.Topics[1] == key {
			return l
		}
	}
	return nil
}

func (c *client) requireVersion(receipt *types.Receipt, topic, hash common.Hash, version uint64) error {
	for _, l := range receipt.Logs {
		if l.Address != c.cfg.DarkpoolAddress {
			continue
		}
		ev, err := parseLog(*l)
		if err != nil || l.Topics[0] != topic || ev.IntentHash != hash {
			continue
		}
		if ev.Version == version {
			return nil
		}
	}
	return fmt.Errorf("transaction %s has no event for intent %s version %d", receipt.TxHash.Hex(), hash.Hex(), version)
}

func (c *client) findFirst(ctx context.Context, topic, key common.Hash) (*Event, error) {
	latest, err := c.LatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := c.filterLogs(ctx, c.cfg.DeployBlock, latest, [][]common.Hash{{topic}, {key}})
	if err != nil {
		return nil, err
	}

	events := c.parseLogs(ctx, logs)
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (c *client) parseLogs(ctx context.Context, logs []types.Log) []Event {
	events := make([]Event, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}

		ev, err := parseLog(l)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping unparsable darkpool log",
				zap.String("tx_hash", l.TxHash.Hex()),
				zap.Uint("log_index", l.Index),
				zap.Error(err))
			continue
		}
		events = append(events, *ev)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})
	return events
}

// filterLogs queries darkpool logs in [from, to] in ranges of at most MaxBlockRange
// blocks, halving the range when the provider reports too many results
func (c *client) filterLogs(ctx context.Context, from, to uint64, topics [][]common.Hash) ([]types.Log, error) {
	step := c.cfg.MaxBlockRange

	var all []types.Log
	for current := from; current <= to; {
		end := current + step - 1
		if end > to || end < current {
			end = to
		}

		logs, err := c.eth.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(current),
			ToBlock:   new(big.Int).SetUint64(end),
			Addresses: []common.Address{c.cfg.DarkpoolAddress},
			Topics:    topics,
		})
		if err == nil {
			all = append(all, logs...)
			if end == to {
				break
			}
			current = end + 1
			continue
		}

		if !isTooManyResultsError(err) || step == 1 {
			return nil, domain.NewTransientError("filter logs", fmt.Errorf("failed to get logs for range %d-%d: %w", current, end, err))
		}

		step /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", step*2),
			zap.Uint64("newStepSize", step),
			zap.Uint64("fromBlock", current),
			zap.Uint64("toBlock", end))
	}

	return all, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}
