package pow

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// fieldLength 每个定长字段的字节数
const fieldLength = 32

// Compute 摘要计算的规范输入
//
// 仅在一次摘要计算期间存在，不持久化。
type Compute struct {
	Difficulty uint256.Int
	PreHash    common.Hash
	Nonce      common.Hash
}

// Encode 返回规范编码：difficulty_le(32) ‖ pre_hash(32) ‖ nonce(32)
//
// 所有字段均为定长，无长度前缀。难度按小端序写出，
// 与链上其他实现逐字节一致。
func (c *Compute) Encode() []byte {
	buf := make([]byte, 0, 3*fieldLength)
	buf = appendDifficulty(buf, &c.Difficulty)
	buf = append(buf, c.PreHash[:]...)
	buf = append(buf, c.Nonce[:]...)
	return buf
}

// Digest 计算 SHA3-256(Encode())
func (c *Compute) Digest() common.Hash {
	return common.Hash(sha3.Sum256(c.Encode()))
}

// Seal 计算摘要并组装封印
func (c *Compute) Seal() *Seal {
	return &Seal{
		Difficulty: c.Difficulty,
		Work:       c.Digest(),
		Nonce:      c.Nonce,
	}
}

// ComputeWork 便捷函数：work = Digest(difficulty, preHash, nonce)
func ComputeWork(difficulty *uint256.Int, preHash, nonce common.Hash) common.Hash {
	c := Compute{PreHash: preHash, Nonce: nonce}
	c.Difficulty.Set(difficulty)
	return c.Digest()
}

// appendDifficulty 以32字节小端序追加难度
func appendDifficulty(buf []byte, d *uint256.Int) []byte {
	be := d.Bytes32()
	for i := fieldLength - 1; i >= 0; i-- {
		buf = append(buf, be[i])
	}
	return buf
}

// readDifficulty 从32字节小端序读取难度
func readDifficulty(b []byte) *uint256.Int {
	var be [fieldLength]byte
	for i := 0; i < fieldLength; i++ {
		be[fieldLength-1-i] = b[i]
	}
	return new(uint256.Int).SetBytes32(be[:])
}

// EncodeDifficulty 返回难度的32字节小端序编码
func EncodeDifficulty(d *uint256.Int) []byte {
	return appendDifficulty(make([]byte, 0, fieldLength), d)
}

// DecodeDifficulty 解析32字节小端序难度，长度不符返回错误
func DecodeDifficulty(b []byte) (*uint256.Int, error) {
	if len(b) != fieldLength {
		return nil, fmt.Errorf("难度编码长度错误: 期望%d字节，实际%d字节", fieldLength, len(b))
	}
	return readDifficulty(b), nil
}
