package pow

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/types"
)

// mockOracle 测试用难度预言机
type mockOracle struct {
	difficulty *uint256.Int
	err        error
	calls      int
}

func (m *mockOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.difficulty, nil
}

var testSeed = [32]byte{0x5e, 0xed}

func newTestEngine(t *testing.T, oracle crypto.DifficultyOracle) *Engine {
	t.Helper()
	e, err := NewEngine(oracle, nil, WithNonceSourceFactory(SeededNonceSourceFactory(testSeed)))
	require.NoError(t, err)
	return e
}

func TestNewEngine_RequiresOracle(t *testing.T) {
	_, err := NewEngine(nil, nil)
	assert.Error(t, err)
}

func TestDifficulty_ReturnsOracleValue(t *testing.T) {
	oracle := &mockOracle{difficulty: uint256.NewInt(42)}
	e := newTestEngine(t, oracle)

	d, err := e.Difficulty(context.Background(), common.HexToHash("0x01"))
	require.NoError(t, err)
	assert.True(t, d.Eq(uint256.NewInt(42)))
	assert.Equal(t, 1, oracle.calls)
}

func TestDifficulty_OracleFailureIsEnvironmentError(t *testing.T) {
	cause := errors.New("connection refused")
	e := newTestEngine(t, &mockOracle{err: cause})

	d, err := e.Difficulty(context.Background(), common.Hash{})
	assert.Nil(t, d)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEnvironment)
	assert.ErrorIs(t, err, cause)

	envErr, ok := types.IsEnvironmentError(err)
	require.True(t, ok)
	assert.Equal(t, "fetching difficulty from oracle failed", envErr.Op)
}

func TestDifficulty_NilValueIsEnvironmentError(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})

	_, err := e.Difficulty(context.Background(), common.Hash{})
	assert.ErrorIs(t, err, types.ErrEnvironment)
}
