// Package types 定义PoW共识相关的错误类型
package types

import (
	"errors"
	"fmt"
)

// ErrEnvironment 环境错误哨兵
//
// 所有 EnvironmentError 都可以通过 errors.Is(err, ErrEnvironment) 识别。
// 调用方据此区分"基础设施故障"（需要中止并由上层决定重试）
// 与"封印内容无效"（Verify 返回 false，区块被拒绝）。
var ErrEnvironment = errors.New("pow environment error")

// EnvironmentError 环境错误
//
// 用于表示难度预言机不可达、随机源初始化失败等基础设施故障。
// 封印内容本身的问题永远不会以 EnvironmentError 的形式出现。
type EnvironmentError struct {
	Op  string // 失败的操作
	Err error  // 底层错误
}

// NewEnvironmentError 创建环境错误
func NewEnvironmentError(op string, err error) *EnvironmentError {
	return &EnvironmentError{Op: op, Err: err}
}

// Error 实现 error 接口
func (e *EnvironmentError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap 返回底层错误
func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Is 使 errors.Is(err, ErrEnvironment) 对所有环境错误成立
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}

// IsEnvironmentError 检查错误是否为环境错误
func IsEnvironmentError(err error) (*EnvironmentError, bool) {
	var envErr *EnvironmentError
	if errors.As(err, &envErr) {
		return envErr, true
	}
	return nil, false
}
