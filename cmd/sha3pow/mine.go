package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	"github.com/weisyn/sha3pow/internal/core/consensus/difficulty"
	cryptoimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/crypto"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
)

// mineResult mine 命令输出
type mineResult struct {
	Found bool   `json:"found"`
	Seal  string `json:"seal,omitempty"`
	Work  string `json:"work,omitempty"`
	Nonce string `json:"nonce,omitempty"`
}

func newMineCmd(flags *GlobalFlags) *cobra.Command {
	var (
		difficultyStr string
		preHash       string
		parent        string
		seed          string
		rounds        uint32
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "挖掘封印",
		Long: `在 --rounds 次尝试内搜索满足难度的封印

示例:
  sha3pow mine --difficulty 1000 --pre-hash 0xab...cd
  sha3pow mine --difficulty 1000 --pre-hash 0xab...cd --seed 0x01...  # 确定性随机源`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := consensusconfig.ParseDifficulty(difficultyStr)
			if err != nil {
				return err
			}
			h, err := parseHash("pre-hash", preHash)
			if err != nil {
				return err
			}
			var p common.Hash
			if parent != "" {
				if p, err = parseHash("parent", parent); err != nil {
					return err
				}
			}
			if rounds == 0 {
				return fmt.Errorf("--rounds 必须大于0")
			}

			var nonceSource crypto.NonceSourceFactory
			if seed != "" {
				s, err := parseHash("seed", seed)
				if err != nil {
					return err
				}
				nonceSource = pow.SeededNonceSourceFactory(s)
			}

			oracle, err := difficulty.NewStaticOracle(d)
			if err != nil {
				return err
			}
			services, err := cryptoimpl.CreateCryptoServices(cryptoimpl.ServiceInput{
				Oracle:      oracle,
				Logger:      cliLogger(flags),
				NonceSource: nonceSource,
			})
			if err != nil {
				return err
			}

			raw, err := services.PowAlgorithm.Mine(p, h, d, rounds)
			if err != nil {
				return err
			}
			if raw == nil {
				_ = printResult(cmd.OutOrStdout(), flags, mineResult{}, [][2]string{{"found", "false"}})
				return fmt.Errorf("在 %d 次尝试内未找到封印", rounds)
			}

			seal, err := pow.DecodeSeal(raw)
			if err != nil {
				return err
			}
			result := mineResult{
				Found: true,
				Seal:  seal.Hex(),
				Work:  seal.Work.Hex(),
				Nonce: seal.Nonce.Hex(),
			}
			return printResult(cmd.OutOrStdout(), flags, result, [][2]string{
				{"seal", result.Seal},
				{"work", result.Work},
				{"nonce", result.Nonce},
			})
		},
	}

	cmd.Flags().StringVar(&difficultyStr, "difficulty", "", "难度（十进制或0x十六进制）")
	cmd.Flags().StringVar(&preHash, "pre-hash", "", "候选区块头哈希（32字节十六进制）")
	cmd.Flags().StringVar(&parent, "parent", "", "父区块哈希（仅用于日志）")
	cmd.Flags().StringVar(&seed, "seed", "", "确定性随机源种子（32字节十六进制）")
	cmd.Flags().Uint32Var(&rounds, "rounds", 500, "最大尝试次数")
	_ = cmd.MarkFlagRequired("difficulty")
	_ = cmd.MarkFlagRequired("pre-hash")
	return cmd
}
