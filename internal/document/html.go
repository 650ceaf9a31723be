package document

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	inlineSpace = regexp.MustCompile(`[ \t\r\n\f]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

// blockElements 转换时前后插入空行的块级元素
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "blockquote": true,
	"pre": true, "table": true, "tr": true, "ul": true, "ol": true,
	"figure": true, "nav": true, "form": true, "dl": true,
}

// skippedElements 不输出内容的元素
var skippedElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "iframe": true, "svg": true,
}

// HTMLParser HTML文档解析器
// 将网页转换为markdown风格文本：标题变为#行，链接变为[text](href)，图片保留<img>标签
type HTMLParser struct{}

// NewHTMLParser 创建一个新的HTML解析器
func NewHTMLParser() Parser {
	return &HTMLParser{}
}

// Parse 解析HTML文件
func (p *HTMLParser) Parse(filePath string) (string, error) {
	return parseFile(p, filePath)
}

// ParseReader 从Reader解析HTML
func (p *HTMLParser) ParseReader(r io.Reader, filename string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %v", err)
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var b strings.Builder
	convertChildren(&b, root)
	return tidy(b.String()), nil
}

// convertChildren 逐个转换子节点
func convertChildren(b *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		convertNode(b, child)
	})
}

func convertNode(b *strings.Builder, s *goquery.Selection) {
	name := goquery.NodeName(s)
	switch {
	case name == "#text":
		b.WriteString(inlineSpace.ReplaceAllString(s.Text(), " "))
	case name == "#comment", skippedElements[name]:
	case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
		level := int(name[1] - '0')
		b.WriteString("\n\n")
		b.WriteString(strings.Repeat("#", level))
		b.WriteByte(' ')
		b.WriteString(collapse(s.Text()))
		b.WriteString("\n\n")
	case name == "a":
		text := collapse(s.Text())
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" || text == "" {
			b.WriteString(text)
			return
		}
		fmt.Fprintf(b, "[%s](%s)", text, strings.TrimSpace(href))
	case name == "img":
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		fmt.Fprintf(b, `<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
	case name == "br":
		b.WriteByte('\n')
	case name == "li":
		b.WriteString("\n- ")
		convertChildren(b, s)
		b.WriteByte('\n')
	case blockElements[name]:
		b.WriteString("\n\n")
		convertChildren(b, s)
		b.WriteString("\n\n")
	default:
		convertChildren(b, s)
	}
}

func collapse(s string) string {
	return strings.TrimSpace(inlineSpace.ReplaceAllString(s, " "))
}

// tidy 去除行首尾空白并把连续空行压缩为一个
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
