package pow

import (
	crand "crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
)

// keystreamSource 基于 ChaCha20 密钥流的随机源
//
// 输出即密钥流本身（对全零明文加密）。
type keystreamSource struct {
	cipher *chacha20.Cipher
}

// Read 实现 io.Reader
func (k *keystreamSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	k.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// NewSessionNonceSource 创建一次挖矿会话的随机源
//
// 种子来自操作系统熵源；读取熵失败时返回错误，由调用方包装为环境错误。
func NewSessionNonceSource() (crypto.NonceSource, error) {
	var seed [chacha20.KeySize]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("读取系统熵失败: %w", err)
	}
	return NewSeededNonceSource(seed)
}

// NewSeededNonceSource 用固定种子创建确定性随机源（测试用）
func NewSeededNonceSource(seed [32]byte) (crypto.NonceSource, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		return nil, fmt.Errorf("初始化ChaCha20失败: %w", err)
	}
	return &keystreamSource{cipher: c}, nil
}

// SeededNonceSourceFactory 返回每次都产生相同确定性序列的工厂
func SeededNonceSourceFactory(seed [32]byte) crypto.NonceSourceFactory {
	return func() (crypto.NonceSource, error) {
		return NewSeededNonceSource(seed)
	}
}
