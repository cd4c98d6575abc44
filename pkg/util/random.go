package util

import (
	"crypto/rand"
	"math/big"
)

const randomLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString 生成指定长度的随机字符串（用于默认密钥）
func GetRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomLetters)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			idx = big.NewInt(int64(i % len(randomLetters)))
		}
		b[i] = randomLetters[idx.Int64()]
	}
	return string(b)
}
