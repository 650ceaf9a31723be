package seo

import (
	"regexp"
	"strings"
)

// spaceClass 空白字符集合，覆盖Unicode空白而不仅是ASCII空白
const spaceClass = `\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	wordPattern       = regexp.MustCompile(`[` + wordClass + `]+`)
	sentenceBoundary  = regexp.MustCompile(`[.?!]+`)
	paragraphBreak    = regexp.MustCompile(`\n[` + spaceClass + `]*\n`)
	markdownImage     = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	htmlImage         = regexp.MustCompile(`<img[` + spaceClass + `]+[^>]*>`)
	externalLink      = regexp.MustCompile(`https?://[^` + spaceClass + `)]+`)
	markdownLinkStart = regexp.MustCompile(`^\[[^\]]*\]\(([^)]+)\)`)
)

// Facts 从原始文本中提取的结构信息
// 每次评估只计算一次，之后只读
type Facts struct {
	Text          string   // 原始文本
	Lines         []string // 去除首尾空白后按行切分
	HeadingLines  []int    // 标题行在Lines中的下标
	Headings      []string // 标题行（已去除首尾空白）
	Words         []string // 单词，保留大小写
	LowerWords    []string // 小写单词，用于关键词匹配
	Sentences     []string // 句子
	Paragraphs    []string // 段落
	HasImage      bool     // 是否包含图片
	ExternalLinks []string // 外部链接URL
	InternalLinks []string // 内部链接（完整的markdown链接标记）
}

// Extract 解析原始文本，提取结构信息
// 对任何输入都不会失败，缺失的结构表现为空序列
func Extract(text string) *Facts {
	trimmed := strings.TrimSpace(text)

	f := &Facts{
		Text:  text,
		Lines: strings.Split(trimmed, "\n"),
	}

	for i, line := range f.Lines {
		if isHeading(line) {
			f.HeadingLines = append(f.HeadingLines, i)
			f.Headings = append(f.Headings, strings.TrimSpace(line))
		}
	}

	f.Words = splitWords(text)
	f.LowerWords = make([]string, len(f.Words))
	for i, w := range f.Words {
		f.LowerWords[i] = strings.ToLower(w)
	}

	f.Sentences = splitSentences(text)
	f.Paragraphs = splitParagraphs(trimmed)

	f.HasImage = markdownImage.MatchString(text) || htmlImage.MatchString(text)
	f.ExternalLinks = externalLink.FindAllString(text, -1)
	f.InternalLinks = scanInternalLinks(text)

	return f
}

// isHeading 去除首尾空白后以#开头的行视为标题
func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func splitWords(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// splitSentences 按一个或多个.?!切分，去除首尾空白并丢弃空片段
func splitSentences(text string) []string {
	return nonEmpty(sentenceBoundary.Split(text, -1))
}

// splitParagraphs 按空行切分，去除首尾空白并丢弃空片段
func splitParagraphs(text string) []string {
	return nonEmpty(paragraphBreak.Split(text, -1))
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// scanInternalLinks 查找目标不以http://或https://开头的markdown链接
// 目标为外链时从下一个字符继续查找，因此外链内部嵌套的链接仍会被识别
func scanInternalLinks(text string) []string {
	var links []string
	for i := 0; i < len(text); {
		if text[i] != '[' {
			i++
			continue
		}
		loc := markdownLinkStart.FindStringSubmatchIndex(text[i:])
		if loc == nil {
			i++
			continue
		}
		dest := text[i+loc[2] : i+loc[3]]
		if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
			i++
			continue
		}
		links = append(links, text[i:i+loc[1]])
		i += loc[1]
	}
	return links
}

// firstWord 返回句子的第一个单词（小写），没有单词时返回空串
func firstWord(sentence string) string {
	return strings.ToLower(wordPattern.FindString(sentence))
}

// introduction 返回引言首句（小写）
// 引言为第一个段落，没有段落时为全文
func (f *Facts) introduction() string {
	intro := f.Text
	if len(f.Paragraphs) > 0 {
		intro = f.Paragraphs[0]
	}
	parts := sentenceBoundary.Split(intro, -1)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

// sectionWordCounts 统计相邻标题之间每个非空小节的词数
// 没有标题时全文为一个小节
func (f *Facts) sectionWordCounts() []int {
	if len(f.HeadingLines) == 0 {
		return []int{len(f.Words)}
	}

	counts := make([]int, 0, len(f.HeadingLines))
	for n, start := range f.HeadingLines {
		end := len(f.Lines)
		if n+1 < len(f.HeadingLines) {
			end = f.HeadingLines[n+1]
		}
		body := strings.TrimSpace(strings.Join(f.Lines[start+1:end], "\n"))
		if body == "" {
			continue
		}
		counts = append(counts, len(splitWords(body)))
	}
	return counts
}
