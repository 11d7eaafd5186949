package pow

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/types"
)

var (
	testParent  = common.HexToHash("0xaaaa")
	testPreHash = common.BytesToHash(bytes.Repeat([]byte{0x11}, 32))
)

// buildSeal 直接构造一个与 preHash、difficulty 一致的封印
func buildSeal(difficulty *uint256.Int, preHash, nonce common.Hash) []byte {
	c := Compute{PreHash: preHash, Nonce: nonce}
	c.Difficulty.Set(difficulty)
	return EncodeSeal(c.Seal())
}

func TestVerify_ConstructedSealIsValid(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))

	ok, err := e.Verify(testParent, testPreHash, raw, one)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_TamperedWorkRejected(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))

	// 难度1下任何 work 都通过判定，只能靠重算发现篡改
	for bit := 0; bit < 256; bit++ {
		tampered := append([]byte(nil), raw...)
		tampered[32+bit/8] ^= 1 << (bit % 8)

		ok, err := e.Verify(testParent, testPreHash, tampered, one)
		require.NoError(t, err)
		assert.False(t, ok, "bit %d", bit)
	}
}

func TestVerify_TamperedNonceRejected(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))
	raw[95] ^= 0x01

	ok, err := e.Verify(testParent, testPreHash, raw, one)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_ForgedWorkRejected(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	max := new(uint256.Int).SetAllOne()

	// work = 0 满足任何难度，但不是真实摘要
	forged := &Seal{Nonce: common.HexToHash("0x22")}
	forged.Difficulty.Set(max)

	ok, err := e.Verify(testParent, testPreHash, EncodeSeal(forged), max)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_WrongPreHashRejected(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))

	ok, err := e.Verify(testParent, common.HexToHash("0x12"), raw, one)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_DifficultyParameterIsAuthoritative(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	raw := buildSeal(uint256.NewInt(1), testPreHash, common.HexToHash("0x22"))

	// 封印内嵌难度1，而调用方要求难度2：重算结果不同，必须拒绝
	ok, err := e.Verify(testParent, testPreHash, raw, uint256.NewInt(2))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_InsufficientWorkRejected(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	max := new(uint256.Int).SetAllOne()

	// 真实摘要几乎不可能 <= 1
	raw := buildSeal(max, testPreHash, common.HexToHash("0x22"))

	ok, err := e.Verify(testParent, testPreHash, raw, max)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_TruncatedSealIsFalseNotError(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))

	for _, n := range []int{0, 10, 95} {
		ok, err := e.Verify(testParent, testPreHash, raw[:n], one)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestVerify_TrailingBytesAfterValidSeal(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	one := uint256.NewInt(1)
	raw := buildSeal(one, testPreHash, common.HexToHash("0x22"))

	ok, err := e.Verify(testParent, testPreHash, append(raw, 0x00), one)
	require.NoError(t, err)
	assert.True(t, ok)

	// 尾部内容不参与校验，但前96字节仍需完整有效
	tampered := append([]byte(nil), raw...)
	tampered[40] ^= 0x01
	ok, err = e.Verify(testParent, testPreHash, append(tampered, 0x00), one)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_ZeroDifficulty(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})
	zero := uint256.NewInt(0)
	raw := buildSeal(zero, testPreHash, common.HexToHash("0x22"))

	ok, err := e.Verify(testParent, testPreHash, raw, zero)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_NilDifficultyIsEnvironmentError(t *testing.T) {
	e := newTestEngine(t, &mockOracle{})

	ok, err := e.Verify(testParent, testPreHash, make([]byte, 96), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, err, types.ErrEnvironment)
}
