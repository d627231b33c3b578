package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkm     *tiktoken.Tiktoken
	tkmOnce sync.Once
)

// GetTokenCount 计算文本的 Token 数
func GetTokenCount(text string) int {
	tkmOnce.Do(func() {
		// cl100k_base 是目前主流模型最常用的编码方式
		tke, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return
		}
		tkm = tke
	})
	if tkm == nil {
		// 兜底 拿不到编码器就按字符数估算
		return len([]rune(text))
	}
	tokens := tkm.Encode(text, nil, nil)
	return len(tokens)
}
