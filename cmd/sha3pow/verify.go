package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	"github.com/weisyn/sha3pow/internal/core/consensus/difficulty"
	cryptoimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/crypto"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
)

// errSealInvalid 封印未通过验证
var errSealInvalid = errors.New("封印无效")

// verifyResult verify 命令输出
type verifyResult struct {
	Valid bool `json:"valid"`
}

func newVerifyCmd(flags *GlobalFlags) *cobra.Command {
	var difficultyStr, preHash, parent, sealHex string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "验证封印",
		Long: `验证封印是否为 pre_hash 在给定难度下的有效解

难度以 --difficulty 为准，封印中携带的难度必须与之一致。
封印无效时以非零状态退出。`,
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
			// 长度不足的封印按无效处理，交给 Verify 给出结论
			var raw []byte
			seal, err := pow.ParseSealHex(sealHex)
			switch {
			case err == nil:
				raw = pow.EncodeSeal(seal)
			case errors.Is(err, pow.ErrSealTruncated):
			default:
				return fmt.Errorf("--seal 无效: %w", err)
			}

			oracle, err := difficulty.NewStaticOracle(d)
			if err != nil {
				return err
			}
			services, err := cryptoimpl.CreateCryptoServices(cryptoimpl.ServiceInput{
				Oracle: oracle,
				Logger: cliLogger(flags),
			})
			if err != nil {
				return err
			}

			ok, err := services.PowAlgorithm.Verify(p, h, raw, d)
			if err != nil {
				return err
			}
			if err := printResult(cmd.OutOrStdout(), flags, verifyResult{Valid: ok}, [][2]string{
				{"valid", fmt.Sprintf("%t", ok)},
			}); err != nil {
				return err
			}
			if !ok {
				return errSealInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&difficultyStr, "difficulty", "", "难度（十进制或0x十六进制）")
	cmd.Flags().StringVar(&preHash, "pre-hash", "", "候选区块头哈希（32字节十六进制）")
	cmd.Flags().StringVar(&parent, "parent", "", "父区块哈希（仅用于日志）")
	cmd.Flags().StringVar(&sealHex, "seal", "", "封印（96字节十六进制）")
	_ = cmd.MarkFlagRequired("difficulty")
	_ = cmd.MarkFlagRequired("pre-hash")
	_ = cmd.MarkFlagRequired("seal")
	return cmd
}
