package pow

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
)

// ErrSealTruncated 封印字节不足96字节
var ErrSealTruncated = errors.New("seal truncated")

// Seal 挖矿成功后产生的不可变封印
//
// 线格式：difficulty_le(32) ‖ work(32) ‖ nonce(32)，共96字节。
type Seal struct {
	Difficulty uint256.Int
	Work       common.Hash
	Nonce      common.Hash
}

// Equal 三个字段全部相等时返回 true
func (s *Seal) Equal(other *Seal) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Difficulty.Eq(&other.Difficulty) && s.Work == other.Work && s.Nonce == other.Nonce
}

// Hex 返回 0x 前缀的十六进制编码
func (s *Seal) Hex() string {
	return hexutil.Encode(EncodeSeal(s))
}

// String 实现 fmt.Stringer
func (s *Seal) String() string {
	return fmt.Sprintf("Seal{difficulty=%s work=%s nonce=%s}", s.Difficulty.Dec(), s.Work.Hex(), s.Nonce.Hex())
}

// EncodeSeal 编码封印为96字节
func EncodeSeal(s *Seal) []byte {
	buf := make([]byte, 0, crypto.SealLength)
	buf = appendDifficulty(buf, &s.Difficulty)
	buf = append(buf, s.Work[:]...)
	buf = append(buf, s.Nonce[:]...)
	return buf
}

// DecodeSeal 从 raw 的前96字节解码封印
//
// 与其他节点的前缀解码保持一致：96字节之后的内容被忽略。
// 不足96字节时返回 ErrSealTruncated 而不是 panic。
func DecodeSeal(raw []byte) (*Seal, error) {
	if len(raw) < crypto.SealLength {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSealTruncated, len(raw), crypto.SealLength)
	}

	s := &Seal{}
	s.Difficulty.Set(readDifficulty(raw[0:fieldLength]))
	copy(s.Work[:], raw[fieldLength:2*fieldLength])
	copy(s.Nonce[:], raw[2*fieldLength:3*fieldLength])
	return s, nil
}

// ParseSealHex 解析 0x 前缀的十六进制封印
func ParseSealHex(s string) (*Seal, error) {
	raw, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("解析封印十六进制失败: %w", err)
	}
	return DecodeSeal(raw)
}
