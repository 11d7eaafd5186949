package main

import (
	"github.com/spf13/cobra"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
)

// digestResult digest 命令输出
type digestResult struct {
	Difficulty string `json:"difficulty"`
	PreHash    string `json:"pre_hash"`
	Nonce      string `json:"nonce"`
	Work       string `json:"work"`
	Meets      bool   `json:"meets_difficulty"`
}

func newDigestCmd(flags *GlobalFlags) *cobra.Command {
	var difficulty, preHash, nonce string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "计算工作摘要",
		Long: `计算 SHA3-256(difficulty_le ‖ pre_hash ‖ nonce)

示例:
  sha3pow digest --difficulty 5 --pre-hash 0x11...11 --nonce 0x22...22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := consensusconfig.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			h, err := parseHash("pre-hash", preHash)
			if err != nil {
				return err
			}
			n, err := parseHash("nonce", nonce)
			if err != nil {
				return err
			}

			work := pow.ComputeWork(d, h, n)
			result := digestResult{
				Difficulty: d.Dec(),
				PreHash:    h.Hex(),
				Nonce:      n.Hex(),
				Work:       work.Hex(),
				Meets:      pow.HashMeetsDifficulty(work, d),
			}
			return printResult(cmd.OutOrStdout(), flags, result, [][2]string{
				{"work", result.Work},
			})
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "难度（十进制或0x十六进制）")
	cmd.Flags().StringVar(&preHash, "pre-hash", "", "候选区块头哈希（32字节十六进制）")
	cmd.Flags().StringVar(&nonce, "nonce", "", "nonce（32字节十六进制）")
	_ = cmd.MarkFlagRequired("difficulty")
	_ = cmd.MarkFlagRequired("pre-hash")
	_ = cmd.MarkFlagRequired("nonce")
	return cmd
}
