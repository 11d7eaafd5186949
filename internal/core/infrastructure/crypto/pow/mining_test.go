package pow

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/types"
)

func TestMine_DifficultyOneSingleRound(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)

	raw, err := e.Mine(testParent, testPreHash, one, 1)
	require.NoError(t, err)
	require.Len(t, raw, crypto.SealLength)

	ok, err := e.Verify(testParent, testPreHash, raw, one)
	require.NoError(t, err)
	assert.True(t, ok)

	seal, err := DecodeSeal(raw)
	require.NoError(t, err)
	assert.True(t, seal.Difficulty.Eq(one))
	assert.Equal(t, ComputeWork(one, testPreHash, seal.Nonce), seal.Work)
}

func TestMine_MaxDifficultyExhaustsBudget(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})

	raw, err := e.Mine(testParent, testPreHash, new(uint256.Int).SetAllOne(), 100)
	assert.NoError(t, err)
	assert.Nil(t, raw)
}

func TestMine_ZeroRounds(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})

	raw, err := e.Mine(testParent, testPreHash, uint256.NewInt(1), 0)
	assert.NoError(t, err)
	assert.Nil(t, raw)
}

func TestMine_ModerateDifficultyVerifies(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	d := uint256.NewInt(64)

	raw, err := e.Mine(testParent, testPreHash, d, 100000)
	require.NoError(t, err)
	require.NotNil(t, raw)

	seal, err := DecodeSeal(raw)
	require.NoError(t, err)
	assert.True(t, HashMeetsDifficulty(seal.Work, d))

	ok, err := e.Verify(testParent, testPreHash, raw, d)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMine_SeededSourceIsDeterministic(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	d := uint256.NewInt(16)

	first, err := e.Mine(testParent, testPreHash, d, 10000)
	require.NoError(t, err)
	second, err := e.Mine(testParent, testPreHash, d, 10000)
	require.NoError(t, err)

	// 每次调用都从工厂获取新的随机源，种子相同则结果相同
	assert.Equal(t, first, second)
}

func TestMine_SessionSourcesDiffer(t *testing.T) {
	e, err := NewEngine(&mockOracle{}, nil)
	require.NoError(t, err)
	one := uint256.NewInt(1)

	first, err := e.Mine(testParent, testPreHash, one, 1)
	require.NoError(t, err)
	second, err := e.Mine(testParent, testPreHash, one, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestMine_NonceSourceFailureIsEnvironmentError(t *testing.T) {
	cause := errors.New("entropy unavailable")
	e, err := NewEngine(&mockOracle{}, nil, WithNonceSourceFactory(func() (crypto.NonceSource, error) {
		return nil, cause
	}))
	require.NoError(t, err)

	raw, err := e.Mine(testParent, testPreHash, uint256.NewInt(1), 10)
	assert.Nil(t, raw)
	assert.ErrorIs(t, err, types.ErrEnvironment)
	assert.ErrorIs(t, err, cause)

	envErr, ok := types.IsEnvironmentError(err)
	require.True(t, ok)
	assert.Equal(t, "initialize rng failed for mining", envErr.Op)
}

func TestMine_NilDifficulty(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})

	_, err := e.Mine(testParent, testPreHash, nil, 10)
	assert.ErrorIs(t, err, types.ErrEnvironment)
}

func TestSeededNonceSource_Reproducible(t *testing.T) {
	a, err := NewSeededNonceSource(testSeed)
	require.NoError(t, err)
	b, err := NewSeededNonceSource(testSeed)
	require.NoError(t, err)

	var x, y common.Hash
	_, _ = a.Read(x[:])
	_, _ = b.Read(y[:])
	assert.Equal(t, x, y)

	_, _ = a.Read(x[:])
	assert.NotEqual(t, x, y)
}
