package pow

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWork_KnownAnswer(t *testing.T) {
	// SHA3-256(le32(5) ‖ 0x11*32 ‖ 0x22*32)，独立计算得到
	preHash := common.BytesToHash(bytes.Repeat([]byte{0x11}, 32))
	nonce := common.BytesToHash(bytes.Repeat([]byte{0x22}, 32))

	work := ComputeWork(uint256.NewInt(5), preHash, nonce)
	assert.Equal(t,
		common.HexToHash("0x10aaf07a6401e2c4deedf96c64faad7fb71217ca99abe5444a14652a7827ccaa"),
		work)
}

func TestComputeWork_ZeroInputs(t *testing.T) {
	work := ComputeWork(uint256.NewInt(1000), common.Hash{}, common.Hash{})
	assert.Equal(t,
		common.HexToHash("0xd124a8afbe295fcf60971188387e5981f62217c2cfd21ec3af2c7223823abc71"),
		work)
}

func TestCompute_EncodeLayout(t *testing.T) {
	c := Compute{
		PreHash: common.BytesToHash(bytes.Repeat([]byte{0x11}, 32)),
		Nonce:   common.BytesToHash(bytes.Repeat([]byte{0x22}, 32)),
	}
	c.Difficulty.SetUint64(5)

	enc := c.Encode()
	assert.Len(t, enc, 96)
	assert.Equal(t, byte(0x05), enc[0])
	assert.Equal(t, byte(0x11), enc[32])
	assert.Equal(t, byte(0x22), enc[95])
}

func TestComputeWork_DifficultyIsBound(t *testing.T) {
	preHash := common.HexToHash("0x01")
	nonce := common.HexToHash("0x02")

	assert.NotEqual(t,
		ComputeWork(uint256.NewInt(1), preHash, nonce),
		ComputeWork(uint256.NewInt(2), preHash, nonce))
}

func TestDifficultyEncoding_LittleEndian(t *testing.T) {
	raw := EncodeDifficulty(uint256.NewInt(0x0102))
	require.Len(t, raw, 32)
	assert.Equal(t, byte(0x02), raw[0])
	assert.Equal(t, byte(0x01), raw[1])

	d, err := DecodeDifficulty(raw)
	require.NoError(t, err)
	assert.True(t, d.Eq(uint256.NewInt(0x0102)))

	_, err = DecodeDifficulty(raw[:31])
	assert.Error(t, err)
}
