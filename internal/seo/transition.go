package seo

import (
	"regexp"
	"sort"
	"strings"
)

// transitionPhrases 过渡词表，按语义分组，重复项在编译时去除
var transitionPhrases = []string{
	// 递进
	"also", "moreover", "furthermore", "besides", "in addition", "additionally", "what’s more",
	"not only that", "too", "as well",
	// 转折
	"however", "but", "on the other hand", "yet", "although", "though", "even though", "whereas",
	"while", "conversely",
	// 因果
	"therefore", "consequently", "as a result", "thus", "hence", "so", "because", "since",
	"for this reason", "due to",
	// 比较
	"similarly", "likewise", "in the same way", "just as", "equally", "correspondingly",
	"in like manner", "by the same token",
	// 解释
	"in other words", "that is", "namely", "specifically", "to clarify", "to put it another way",
	// 顺序
	"first", "second", "third", "next", "then", "afterwards", "subsequently", "finally",
	"at last", "in the meantime", "meanwhile", "earlier", "later", "previously",
	// 举例
	"for example", "for instance", "such as", "including", "to illustrate", "in particular",
	"specifically", "like",
	// 强调
	"indeed", "in fact", "certainly", "of course", "without a doubt", "surely", "to be sure",
	"undoubtedly",
	// 总结
	"in conclusion", "to summarize", "in summary", "in short", "in brief", "all in all", "overall",
	"finally",
	// 时间
	"before", "after", "during", "while", "as soon as", "once", "until", "when", "whenever",
	"at the same time", "nowadays",
	// 地点
	"here", "there", "over there", "nearby", "above", "below", "wherever",
	// 让步
	"although", "even though", "though", "granted", "nonetheless", "nevertheless", "still",
	"despite", "regardless",
	// 目的
	"in order to", "so that", "for the purpose of", "with this in mind", "to this end",
	// 条件
	"if", "unless", "provided that", "as long as", "in case",
	"for instance", "such as", "including", "namely", "to illustrate",
	"of course", "certainly", "naturally", "undoubtedly",
	"plus", "and then", "on top of that",
	// 观点
	"in my opinion", "i believe", "from my perspective", "as i see it",
	// 频率
	"always", "often", "sometimes", "rarely", "never",
	"above all", "beyond", "most importantly", "especially", "chiefly",
	"again", "over and over", "repeatedly", "once more",
	"because of", "owing to", "due to", "as a result of",
	"generally", "overall", "broadly", "as a rule", "on the whole",
	"or", "alternatively", "otherwise",
	"admittedly", "in contrast", "while it is true", "on the contrary",
	"anyway", "by the way", "in any case",
	"henceforth", "thereby", "herein",
	"for starters", "to top it off", "at the end of the day",
	"almost", "nearly", "sometimes", "possibly", "apparently",
	"supposing", "provided that", "on condition that",
	"albeit", "alike", "distinct",
	"rarely", "constantly", "perpetually",
	"it is evident", "undeniably", "arguably",
	"consequently", "inevitably", "ergo",
	"in hindsight", "retrospectively", "to sum up",
	"moreover", "what’s more",
}

// wordClass 与词切分一致的单词字符集合，用于整词边界
const wordClass = `\p{L}\p{N}_`

// transitionMatcher 进程级只读的过渡词整词匹配器，初始化后不再修改
var transitionMatcher = compileTransitions(transitionPhrases)

// compileTransitions 将去重后的小写短语编译为单个整词匹配正则
func compileTransitions(phrases []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(phrases))
	alternatives := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		alternatives = append(alternatives, regexp.QuoteMeta(p))
	}
	sort.Strings(alternatives)

	pattern := `(?:^|[^` + wordClass + `])(?:` + strings.Join(alternatives, "|") + `)(?:[^` + wordClass + `]|$)`
	return regexp.MustCompile(pattern)
}

// hasTransition 判断句子中是否包含至少一个过渡词或短语
func hasTransition(sentence string) bool {
	return transitionMatcher.MatchString(strings.ToLower(sentence))
}

// TransitionPhrases 返回去重排序后的过渡词表副本
func TransitionPhrases() []string {
	seen := make(map[string]struct{}, len(transitionPhrases))
	out := make([]string, 0, len(transitionPhrases))
	for _, p := range transitionPhrases {
		p = strings.ToLower(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
