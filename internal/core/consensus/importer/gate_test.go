package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	eventimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/types"
)

type mockOracle struct {
	difficulty *uint256.Int
	err        error
}

func (m *mockOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.difficulty, nil
}

func setup(t *testing.T, oracle *mockOracle) (*pow.Engine, *Gate, *eventimpl.EventBus) {
	t.Helper()
	engine, err := pow.NewEngine(oracle, nil, pow.WithNonceSourceFactory(pow.SeededNonceSourceFactory([32]byte{7})))
	require.NoError(t, err)

	bus := eventimpl.New(nil)
	require.NoError(t, bus.EnableEventHistory(types.EventTypeBlockRejected, 10))

	gate, err := NewGate(engine, bus, nil)
	require.NoError(t, err)
	return engine, gate, bus
}

func minedHeader(t *testing.T, engine *pow.Engine, difficulty *uint256.Int) *Header {
	t.Helper()
	h := &Header{
		Parent:  common.HexToHash("0xaa"),
		PreHash: common.HexToHash("0xbb"),
		Height:  5,
	}
	seal, err := engine.Mine(h.Parent, h.PreHash, difficulty, 10000)
	require.NoError(t, err)
	require.NotNil(t, seal)
	h.Seal = seal
	return h
}

func TestGate_AcceptsValidSeal(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(16)}
	engine, gate, bus := setup(t, oracle)

	header := minedHeader(t, engine, oracle.difficulty)
	require.NoError(t, gate.Check(context.Background(), header))
	assert.Empty(t, bus.GetEventHistory(types.EventTypeBlockRejected))
}

func TestGate_RejectsTamperedSeal(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(16)}
	engine, gate, bus := setup(t, oracle)

	header := minedHeader(t, engine, oracle.difficulty)
	header.Seal[40] ^= 0x01

	err := gate.Check(context.Background(), header)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSeal)

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, uint64(5), rejected.Height)
	assert.NotErrorIs(t, err, types.ErrEnvironment)

	history := bus.GetEventHistory(types.EventTypeBlockRejected)
	require.Len(t, history, 1)
	ev := history[0].(*types.BlockRejectedEvent)
	assert.Equal(t, header.PreHash, ev.PreHash)
}

func TestGate_RejectsSealForOtherPreHash(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(16)}
	engine, gate, _ := setup(t, oracle)

	header := minedHeader(t, engine, oracle.difficulty)
	header.PreHash = common.HexToHash("0xcc")

	assert.ErrorIs(t, gate.Check(context.Background(), header), ErrInvalidSeal)
}

func TestGate_RejectsTruncatedSeal(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(16)}
	engine, gate, _ := setup(t, oracle)

	header := minedHeader(t, engine, oracle.difficulty)
	header.Seal = header.Seal[:95]

	assert.ErrorIs(t, gate.Check(context.Background(), header), ErrInvalidSeal)
}

func TestGate_UsesOracleDifficulty(t *testing.T) {
	// 封印在难度1下挖出，但预言机要求最大难度
	oracle := &mockOracle{difficulty: uint256.NewInt(1)}
	engine, gate, _ := setup(t, oracle)
	header := minedHeader(t, engine, oracle.difficulty)

	oracle.difficulty = new(uint256.Int).SetAllOne()
	assert.ErrorIs(t, gate.Check(context.Background(), header), ErrInvalidSeal)
}

func TestGate_OracleFailureIsEnvironmentError(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(1)}
	engine, gate, bus := setup(t, oracle)
	header := minedHeader(t, engine, oracle.difficulty)

	oracle.err = errors.New("disk unavailable")
	err := gate.Check(context.Background(), header)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEnvironment)
	assert.NotErrorIs(t, err, ErrInvalidSeal)
	assert.Empty(t, bus.GetEventHistory(types.EventTypeBlockRejected))
}

func TestGate_NilHeader(t *testing.T) {
	_, gate, _ := setup(t, &mockOracle{difficulty: uint256.NewInt(1)})
	assert.Error(t, gate.Check(context.Background(), nil))
}
