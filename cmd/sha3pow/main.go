// Package main 是 sha3pow 命令行入口
//
// 子命令：
//   - digest: 计算 SHA3-256 工作摘要
//   - mine:   在给定预算内挖掘封印
//   - verify: 验证封印
//   - node:   启动单机开发节点
package main

func main() {
	Execute()
}
