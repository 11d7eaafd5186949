package consensus

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/sha3pow/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(nil)
	require.NoError(t, err)

	opts := cfg.GetOptions()
	assert.Equal(t, uint32(500), opts.RoundBudget)
	assert.Equal(t, 2*time.Second, opts.BuildTime)
	assert.Equal(t, OracleBackendStatic, opts.OracleBackend)
	assert.True(t, opts.InitialDifficulty.Eq(uint256.NewInt(1000)))
}

func TestNew_AppliesUserConfig(t *testing.T) {
	rounds := uint32(64)
	build := "500ms"
	diff := "0x10"
	backend := "STORE"
	ttl := "0s"

	cfg, err := New(&types.UserConsensusConfig{
		RoundBudget:       &rounds,
		BuildTime:         &build,
		InitialDifficulty: &diff,
		OracleBackend:     &backend,
		OracleCacheTTL:    &ttl,
	})
	require.NoError(t, err)

	opts := cfg.GetOptions()
	assert.Equal(t, uint32(64), opts.RoundBudget)
	assert.Equal(t, 500*time.Millisecond, opts.BuildTime)
	assert.True(t, opts.InitialDifficulty.Eq(uint256.NewInt(16)))
	assert.Equal(t, OracleBackendStore, opts.OracleBackend)
	assert.Equal(t, time.Duration(0), opts.OracleCacheTTL)
}

func TestNew_RejectsInvalidValues(t *testing.T) {
	zero := uint32(0)
	badBackend := "redis"
	badDiff := "twelve"

	cases := []struct {
		name string
		cfg  *types.UserConsensusConfig
	}{
		{"零轮次预算", &types.UserConsensusConfig{RoundBudget: &zero}},
		{"未知后端", &types.UserConsensusConfig{OracleBackend: &badBackend}},
		{"难度格式错误", &types.UserConsensusConfig{InitialDifficulty: &badDiff}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestParseDifficulty_MaxValue(t *testing.T) {
	d, err := ParseDifficulty("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	max := new(uint256.Int).SetAllOne()
	assert.True(t, d.Eq(max))
}
