// Package miner 实现挖矿驱动器
//
// ⛏️ **挖矿驱动 (Mining Driver)**
//
// 驱动器围绕 PowAlgorithm.Mine 构建一个可取消的循环：
// 获取最新挖矿任务 → 查询难度 → 有界搜索 → 提交封印。
// Mine 本身不检查取消信号，驱动器在两次调用之间检查 ctx。
//
// 📁 **文件组织**：
// - interfaces.go：任务来源与提交接口
// - driver.go：主循环
// - lifecycle.go：启动、停止与统计
// - module.go：fx 装配
package miner

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Work 一次挖矿任务
//
// PreHash 是不含封印的候选区块头哈希，封印将绑定到它上面。
type Work struct {
	Parent  common.Hash
	PreHash common.Hash
	Height  uint64
}

// WorkProvider 提供当前最优链头上的挖矿任务
type WorkProvider interface {
	BestWork(ctx context.Context) (*Work, error)
}

// Submitter 接收挖出的封印
//
// 返回错误表示封印未被接受，驱动器记录日志后重新获取任务。
type Submitter interface {
	SubmitSeal(ctx context.Context, work *Work, seal []byte) error
}
