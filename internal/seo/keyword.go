package seo

import (
	"strings"
)

// Keyword 焦点关键词（可为多词短语）
// phrase为小写去空白后的整体，tokens为按空白切分后的子词序列
type Keyword struct {
	phrase string
	tokens []string
}

// NewKeyword 规范化原始关键词
func NewKeyword(raw string) Keyword {
	phrase := strings.TrimSpace(strings.ToLower(raw))
	return Keyword{
		phrase: phrase,
		tokens: strings.Fields(phrase),
	}
}

// Phrase 返回规范化后的关键词短语
func (k Keyword) Phrase() string {
	return k.phrase
}

// Tokens 返回关键词子词序列的副本
func (k Keyword) Tokens() []string {
	return append([]string(nil), k.tokens...)
}

// Empty 关键词为空时不匹配任何内容
func (k Keyword) Empty() bool {
	return len(k.tokens) == 0
}

// CountIn 统计关键词子词序列在小写词序列中作为连续子序列出现的次数
// 允许重叠匹配
func (k Keyword) CountIn(words []string) int {
	n := len(k.tokens)
	if n == 0 || len(words) < n {
		return 0
	}

	count := 0
	for i := 0; i+n <= len(words); i++ {
		if matchAt(words, i, k.tokens) {
			count++
		}
	}
	return count
}

// ContainedIn 不区分大小写地判断关键词短语是否为s的子串
func (k Keyword) ContainedIn(s string) bool {
	if k.Empty() {
		return false
	}
	return strings.Contains(strings.ToLower(s), k.phrase)
}

func matchAt(words []string, start int, tokens []string) bool {
	for j, tok := range tokens {
		if words[start+j] != tok {
			return false
		}
	}
	return true
}
