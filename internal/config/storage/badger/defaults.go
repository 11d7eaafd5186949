package badger

// BadgerDB存储默认配置值

const (
	// === 基础配置 ===

	// defaultPath 默认数据库路径
	defaultPath = "./data/badger"

	// defaultInMemory 默认使用磁盘存储
	defaultInMemory = false

	// defaultSyncWrites 默认启用同步写入
	// 难度记录是链数据的一部分，需要强一致性
	defaultSyncWrites = true

	// === 性能配置 ===

	// defaultMemTableSize 默认内存表大小为64MB
	defaultMemTableSize = 64 << 20 // 64MB

	// MinMemTableSize 内存表下限，低于该值时单批次上限过小
	MinMemTableSize = 1 << 20 // 1MB

	// defaultValueThreshold 默认值分离阈值
	// 难度记录只有32字节，全部留在LSM树中
	defaultValueThreshold = 1 << 10 // 1KB

	// === 维护配置 ===

	// defaultEnableAutoCompaction 默认启用自动压缩
	defaultEnableAutoCompaction = true
)
