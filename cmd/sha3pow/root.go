package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	logconfig "github.com/weisyn/sha3pow/internal/config/log"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	OutputFormat string // 输出格式
	Verbose      bool   // 详细模式
}

// newRootCmd 创建根命令
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	root := &cobra.Command{
		Use:   "sha3pow",
		Short: "SHA3-256 工作量证明工具",
		Long: `sha3pow - SHA3-256 工作量证明共识工具

封印格式为96字节: difficulty_le(32) ‖ work(32) ‖ nonce(32)，
work = SHA3-256(difficulty_le ‖ pre_hash ‖ nonce)，
当 work(大端) × difficulty 不溢出256位时封印满足难度。`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.OutputFormat {
			case "json", "text":
				return nil
			default:
				return fmt.Errorf("不支持的输出格式: %s", flags.OutputFormat)
			}
		},
	}

	root.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "text", "输出格式: json|text")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "输出调试日志")

	root.AddCommand(newDigestCmd(flags))
	root.AddCommand(newMineCmd(flags))
	root.AddCommand(newVerifyCmd(flags))
	root.AddCommand(newNodeCmd())
	root.AddCommand(newVersionCmd(flags))
	return root
}

// Execute 执行根命令
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// cliLogger 根据 --verbose 创建日志记录器
func cliLogger(flags *GlobalFlags) log.Logger {
	if !flags.Verbose {
		return logimpl.NewNop()
	}
	logger, err := logimpl.New(logconfig.FromOptions(&logconfig.LogOptions{
		Level:    "debug",
		FilePath: "stderr",
	}))
	if err != nil {
		return logimpl.NewNop()
	}
	return logger
}

// parseHash 严格解析32字节十六进制哈希
func parseHash(name, s string) (common.Hash, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("--%s 不是有效的十六进制: %w", name, err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, fmt.Errorf("--%s 长度应为%d字节，实际%d字节", name, common.HashLength, len(raw))
	}
	return common.BytesToHash(raw), nil
}

// printResult 按输出格式打印结果
//
// text 模式下逐行打印 fields 中的键值对（按给定顺序）。
func printResult(w io.Writer, flags *GlobalFlags, result interface{}, fields [][2]string) error {
	if flags.OutputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, kv := range fields {
		if _, err := fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}
