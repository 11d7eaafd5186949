package memory

import "time"

// 内存缓存默认配置值
const (
	// defaultLifeWindow 条目默认存活时间
	defaultLifeWindow = 10 * time.Minute

	// defaultCleanWindow 过期条目清理间隔
	defaultCleanWindow = time.Minute

	// defaultMaxEntriesInWindow 生命周期窗口内预估条目数
	// 每个父区块一条难度记录，1万条覆盖足够长的链尾
	defaultMaxEntriesInWindow = 10000

	// defaultMaxEntrySize 单条目预估大小（字节）
	defaultMaxEntrySize = 64

	// defaultHardMaxCacheSizeMB 缓存内存上限（MB）
	defaultHardMaxCacheSizeMB = 32
)
