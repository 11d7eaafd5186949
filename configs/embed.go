// Package configs 嵌入内置的节点配置
package configs

import _ "embed"

// 开发环境配置：store 难度后端，持久化到 ./data/dev
//
//go:embed development/config.json
var developmentConfig []byte

// GetDevelopmentConfig 获取开发环境配置
func GetDevelopmentConfig() []byte {
	return developmentConfig
}
