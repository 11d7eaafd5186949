package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/weisyn/sha3pow/internal/config/storage/badger"
	"github.com/weisyn/sha3pow/pkg/types"
)

// ValidationError 配置验证错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("配置验证失败 [%s]: %s", e.Field, e.Message)
}

// ValidationErrors 多个验证错误
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	msg := "配置验证失败，发现以下问题：\n"
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// validLogLevels 支持的日志级别
var validLogLevels = map[string]bool{
	string(types.DebugLevel): true,
	string(types.InfoLevel):  true,
	string(types.WarnLevel):  true,
	string(types.ErrorLevel): true,
}

// ValidateAppConfig 校验与字段取值无关的结构性约束
//
// 字段取值（时长格式、难度格式等）由各子包 New 负责解析和报错。
func ValidateAppConfig(appConfig *types.AppConfig) error {
	var errs []error

	if appConfig.Log != nil && appConfig.Log.Level != nil {
		level := strings.ToLower(strings.TrimSpace(*appConfig.Log.Level))
		if !validLogLevels[level] {
			errs = append(errs, &ValidationError{
				Field:   "log.level",
				Message: fmt.Sprintf("不支持的日志级别 %q（可选 debug, info, warn, error）", *appConfig.Log.Level),
			})
		}
	}

	if c := appConfig.Consensus; c != nil && c.OracleBackend != nil &&
		strings.EqualFold(strings.TrimSpace(*c.OracleBackend), "store") {
		if s := appConfig.Storage; s != nil && s.InMemory != nil && *s.InMemory &&
			c.MinerEnabled != nil && !*c.MinerEnabled {
			errs = append(errs, &ValidationError{
				Field:   "consensus.oracle_backend",
				Message: "store 后端配合内存存储且未启用挖矿时，难度记录无法产生",
			})
		}
	}

	if s := appConfig.Storage; s != nil && s.MemTableSize != nil && *s.MemTableSize < badger.MinMemTableSize {
		errs = append(errs, &ValidationError{
			Field:   "storage.mem_table_size",
			Message: fmt.Sprintf("内存表过小: %d（至少 %d 字节）", *s.MemTableSize, badger.MinMemTableSize),
		})
	}

	if m := appConfig.Metrics; m != nil && m.ListenAddr != nil && strings.TrimSpace(*m.ListenAddr) != "" {
		if _, _, err := net.SplitHostPort(strings.TrimSpace(*m.ListenAddr)); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "metrics.listen_addr",
				Message: fmt.Sprintf("监听地址无效: %v", err),
			})
		}
	}

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}
