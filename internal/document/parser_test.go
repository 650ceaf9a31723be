package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/seo-evaluator/internal/models"
	"github.com/fyerfyer/seo-evaluator/internal/seo"
)

func createTempFile(t *testing.T, content, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "article"+ext)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func createTempPDF(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "article.pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 10, text, "", "", false)
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func TestPlainTextParser(t *testing.T) {
	content := "Hello, this is a plain text file.\r\nSecond line."
	file := createTempFile(t, content, ".txt")

	text, err := NewPlainTextParser().Parse(file)
	require.NoError(t, err)
	assert.Equal(t, "Hello, this is a plain text file.\nSecond line.", text)
}

func TestMarkdownParserKeepsSource(t *testing.T) {
	content := "# Title\r\n\r\nThis is a **markdown** file with [a link](/home).\r\n\r\n![img](a.png)"
	file := createTempFile(t, content, ".md")

	text, err := NewMarkdownParser().Parse(file)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nThis is a **markdown** file with [a link](/home).\n\n![img](a.png)", text)
}

func TestRenderPreview(t *testing.T) {
	out := RenderPreview("# Title\n\nThis is **bold** and [external](https://example.com).")
	assert.Contains(t, out, "Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `target="_blank"`)
}

func TestHTMLParser(t *testing.T) {
	page := `<html><head><title>t</title><style>p{color:red}</style></head><body>` +
		`<h1>SEO Guide</h1><p>Read <a href="/basics">the basics</a> and <a href="https://example.org">this</a>.</p>` +
		`<img src="a.png" alt="chart"><script>var x = 1;</script><ul><li>One</li><li>Two</li></ul></body></html>`

	text, err := NewHTMLParser().ParseReader(strings.NewReader(page), "page.html")
	require.NoError(t, err)

	want := "# SEO Guide\n\nRead [the basics](/basics) and [this](https://example.org).\n\n" +
		`<img src="a.png" alt="chart">` + "\n\n- One\n\n- Two"
	assert.Equal(t, want, text)

	// 转换结果保留评估所需的结构
	result := seo.Evaluate(text, "seo guide")
	assert.Equal(t, seo.Green, result.Get(seo.Images))
	assert.Equal(t, seo.Green, result.Get(seo.InternalLinks))
	assert.Equal(t, seo.Green, result.Get(seo.OutboundLinks))
	assert.Equal(t, seo.Green, result.Get(seo.KeyphraseInSubheadings))
}

func TestHTMLParserHeadingLevels(t *testing.T) {
	page := "<h2>  Second\n level </h2><div>body <br>text</div><h3>Third</h3>"
	text, err := NewHTMLParser().ParseReader(strings.NewReader(page), "page.htm")
	require.NoError(t, err)
	assert.Equal(t, "## Second level\n\nbody\ntext\n\n### Third", text)
}

func TestPDFParser(t *testing.T) {
	file := createTempPDF(t, "This is a PDF test.\nSecond line.")

	text, err := NewPDFParser().Parse(file)
	require.NoError(t, err)
	assert.Contains(t, text, "This is a PDF test.")
	assert.Contains(t, text, "Second line.")
}

func TestContentStreamText(t *testing.T) {
	stream := `BT /F1 12 Tf 10 10 Td (Hello \(world\)) Tj ET
BT 10 20 Td [(Sp)20(lit)-250(word)] TJ ET`
	assert.Equal(t, "Hello (world)\nSplit word", contentStreamText(stream))

	assert.Equal(t, "a\nb\\c", unescapePDFString(`a\nb\\c`))
	assert.Equal(t, "A", unescapePDFString(`\101`))
	assert.Equal(t, "\x00", unescapePDFString(`\400`))
	assert.Equal(t, "A", unescapePDFString(`\501`))
	assert.Equal(t, "\xff", unescapePDFString(`\377`))
	assert.Equal(t, "\x0012", unescapePDFString(`\40012`))
}

func TestParserFactory(t *testing.T) {
	tests := []struct {
		file     string
		expected string
	}{
		{createTempFile(t, "plain text", ".txt"), "plain text"},
		{createTempFile(t, "# Markdown", ".md"), "# Markdown"},
		{createTempFile(t, "<h1>Page</h1>", ".html"), "# Page"},
		{createTempPDF(t, "PDF content"), "PDF content"},
	}

	for _, tt := range tests {
		t.Run(filepath.Ext(tt.file), func(t *testing.T) {
			parser, err := ParserFactory(tt.file)
			require.NoError(t, err)
			text, err := parser.Parse(tt.file)
			require.NoError(t, err)
			assert.Contains(t, text, tt.expected)
		})
	}

	_, err := ParserFactory("slides.pptx")
	assert.ErrorIs(t, err, models.ErrUnsupportedDocument)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, Markdown, DetectContentType("a/b/README.MD"))
	assert.Equal(t, HTML, DetectContentType("index.htm"))
	assert.Equal(t, Unknown, DetectContentType("noext"))
	assert.Len(t, SupportedExtensions(), 6)
}
