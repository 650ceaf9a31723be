package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// pageFile pdfcpu导出的页面内容文件名，形如 name_Content_page_3.txt
	pageFile = regexp.MustCompile(`_(\d+)\.txt$`)

	// textOperator 内容流中的文本绘制和换行操作
	textOperator = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*(?:Tj|'|")|\[((?:[^\]\\]|\\.)*)\]\s*TJ|\bET\b|\bT\*|\bT[dD]\b`)

	// arrayElement TJ数组中的字符串或字距调整值
	arrayElement = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)|(-?\d+(?:\.\d+)?)`)
)

// wordGap TJ数组中字距调整小于该值时视为单词间隔
const wordGap = -200

// PDFParser PDF文档解析器
type PDFParser struct{}

// NewPDFParser 创建一个新的PDF解析器
func NewPDFParser() Parser {
	return &PDFParser{}
}

// Parse 解析PDF文件并提取其文本内容
func (p *PDFParser) Parse(filePath string) (string, error) {
	return parseFile(p, filePath)
}

// ParseReader 从Reader解析PDF
// pdfcpu按页导出解码后的内容流，再从中提取文本绘制操作的字符串
func (p *PDFParser) ParseReader(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %v", err)
	}

	// 创建临时目录用于存放提取的内容
	tmpDir, err := os.MkdirTemp("", "pdfcpu_extract_")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if err := api.ExtractContent(bytes.NewReader(data), tmpDir, base, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract text from PDF: %v", err)
	}

	pages, err := pageFiles(tmpDir)
	if err != nil {
		return "", err
	}

	var allText strings.Builder
	for _, name := range pages {
		content, err := os.ReadFile(filepath.Join(tmpDir, name))
		if err != nil {
			continue
		}
		text := contentStreamText(string(content))
		if text == "" {
			continue
		}
		if allText.Len() > 0 {
			allText.WriteString("\n\n")
		}
		allText.WriteString(text)
	}

	result := strings.TrimSpace(allText.String())
	if result == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return result, nil
}

// pageFiles 返回按页码排序的内容文件名
func pageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read extracted content dir: %v", err)
	}

	type page struct {
		name string
		num  int
	}
	var pages []page
	for _, e := range entries {
		m := pageFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		pages = append(pages, page{name: e.Name(), num: num})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	names := make([]string, len(pages))
	for i, pg := range pages {
		names[i] = pg.name
	}
	return names, nil
}

// contentStreamText 从解码后的页面内容流中提取文本
// 文本块结束或换行定位时输出换行
func contentStreamText(stream string) string {
	var lines []string
	var line strings.Builder
	flush := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	for _, m := range textOperator.FindAllStringSubmatchIndex(stream, -1) {
		switch {
		case m[2] >= 0:
			line.WriteString(unescapePDFString(stream[m[2]:m[3]]))
		case m[4] >= 0:
			for _, el := range arrayElement.FindAllStringSubmatch(stream[m[4]:m[5]], -1) {
				if el[2] != "" {
					if n, err := strconv.ParseFloat(el[2], 64); err == nil && n < wordGap {
						line.WriteByte(' ')
					}
					continue
				}
				line.WriteString(unescapePDFString(el[1]))
			}
		default:
			flush()
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

// unescapePDFString 处理PDF字面量字符串中的转义序列
func unescapePDFString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			// 超过\377的八进制值只保留低8位
			v, _ := strconv.ParseUint(s[i:j], 8, 16)
			b.WriteByte(byte(v))
			i = j - 1
		case '\n':
			// 行尾续行
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
