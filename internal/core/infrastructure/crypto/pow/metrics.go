package pow

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 验证结果标签
const (
	verifyResultValid        = "valid"
	verifyResultDecodeFailed = "decode_failed"
	verifyResultInsufficient = "insufficient_work"
	verifyResultMismatch     = "recompute_mismatch"
	verifyResultError        = "error"
)

var (
	// VerifyTotal 封印验证次数（按结果分类）
	VerifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sha3pow_verify_total",
			Help: "封印验证总次数（valid/decode_failed/insufficient_work/recompute_mismatch/error）",
		},
		[]string{"result"},
	)

	// MineRoundsTotal Mine 调用次数
	MineRoundsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sha3pow_mine_rounds_total",
			Help: "Mine 调用总次数",
		},
	)

	// MineAttemptsTotal 摘要尝试次数
	MineAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sha3pow_mine_attempts_total",
			Help: "挖矿过程中计算的摘要总数",
		},
	)

	// SealsFoundTotal 成功挖出的封印数
	SealsFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sha3pow_seals_found_total",
			Help: "成功挖出的封印总数",
		},
	)
)

func init() {
	prometheus.MustRegister(VerifyTotal)
	prometheus.MustRegister(MineRoundsTotal)
	prometheus.MustRegister(MineAttemptsTotal)
	prometheus.MustRegister(SealsFoundTotal)
}
