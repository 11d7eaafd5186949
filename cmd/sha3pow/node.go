package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/sha3pow/configs"
	"github.com/weisyn/sha3pow/internal/app"
	"github.com/weisyn/sha3pow/internal/app/version"
)

func newNodeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "node",
		Short: "启动单机开发节点",
		Long: `启动单机开发节点：内存链 + 挖矿驱动 + 封印导入校验

配置文件为JSON，环境变量 SHA3POW_CONFIG_PATH 优先于 --config；
两者都未指定时使用内置的开发环境配置。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "🚀 %s\n", version.GetFullVersion())

			opts := []app.Option{app.WithConfigFile(configPath)}
			if configPath == "" && os.Getenv("SHA3POW_CONFIG_PATH") == "" {
				opts = append(opts, app.WithEmbeddedConfig(configs.GetDevelopmentConfig()))
			}

			node, err := app.Start(opts...)
			if err != nil {
				return err
			}
			node.Wait()

			head := node.Head()
			stats := node.MiningStats()
			fmt.Fprintf(cmd.OutOrStdout(), "链头高度: %d (%s)，挖出区块: %d，挖矿轮次: %d\n",
				head.Header.Height, head.Hash.Hex(), stats.Seals, stats.Rounds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径（JSON）")
	return cmd
}

func newVersionCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.OutputFormat == "json" {
				return printResult(cmd.OutOrStdout(), flags, version.GetBuildInfo(), nil)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			return err
		},
	}
}
