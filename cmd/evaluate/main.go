package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/seo-evaluator/internal/document"
	"github.com/fyerfyer/seo-evaluator/internal/models"
	"github.com/fyerfyer/seo-evaluator/internal/report"
	"github.com/fyerfyer/seo-evaluator/internal/seo"
)

// 命令行参数
type flags struct {
	File       string
	Keyword    string
	JSON       bool
	Plain      bool
	Thresholds bool
	Stats      bool
	Verbose    bool
}

func main() {
	f := parseFlags()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if f.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := run(f, os.Stdin, os.Stdout, logger); err != nil {
		logger.WithError(err).Error("Evaluation failed")
		os.Exit(1)
	}
}

func parseFlags() flags {
	f := flags{}

	flag.StringVar(&f.File, "file", "", "Document to evaluate (.md, .txt, .html, .pdf); reads stdin when empty")
	flag.StringVar(&f.Keyword, "keyword", "", "Focus keyphrase")
	flag.BoolVar(&f.JSON, "json", false, "Print the report as JSON")
	flag.BoolVar(&f.Plain, "plain", false, "Disable colors")
	flag.BoolVar(&f.Thresholds, "thresholds", false, "Show the green condition for criteria that need work")
	flag.BoolVar(&f.Stats, "stats", false, "Show the measurements behind the verdicts")
	flag.BoolVar(&f.Verbose, "v", false, "Verbose logging")

	flag.Parse()
	return f
}

// run 读取文档并输出评估报告
func run(f flags, stdin io.Reader, stdout io.Writer, logger *logrus.Logger) error {
	if strings.TrimSpace(f.Keyword) == "" {
		return models.ErrEmptyKeyword
	}

	content, err := readContent(f.File, stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return models.ErrEmptyContent
	}

	logger.WithFields(logrus.Fields{
		"file":    f.File,
		"bytes":   len(content),
		"keyword": f.Keyword,
	}).Debug("Evaluating document")

	rep := seo.Analyze(content, f.Keyword)
	if f.JSON {
		return report.WriteJSON(stdout, rep)
	}
	return report.Render(stdout, rep, report.Options{
		Plain:      f.Plain,
		Thresholds: f.Thresholds,
		Stats:      f.Stats,
	})
}

// readContent 从文件或标准输入读取文本，文件按扩展名选择解析器
func readContent(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	parser, err := document.ParserFactory(path)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedDocument) {
			return "", fmt.Errorf("%w (supported: %v)", err, document.SupportedExtensions())
		}
		return "", err
	}
	return parser.Parse(path)
}
