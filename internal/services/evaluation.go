package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/seo-evaluator/internal/cache"
	"github.com/fyerfyer/seo-evaluator/internal/document"
	"github.com/fyerfyer/seo-evaluator/internal/models"
	"github.com/fyerfyer/seo-evaluator/internal/seo"
)

// Evaluation 一次评估的完整结果
type Evaluation struct {
	ID        string          `json:"id"`         // 评估ID
	Keyword   string          `json:"keyword"`    // 规范化后的关键词
	Result    seo.Result      `json:"result"`     // 13项有序结论
	Stats     seo.Stats       `json:"stats"`      // 结论依据的度量值
	Summary   seo.Summary     `json:"summary"`    // 各结论数量
	NeedsWork []seo.Criterion `json:"needs_work"` // 未达到Green的评估项，Red在前
	Cached    bool            `json:"cached"`     // 是否命中缓存
	CreatedAt time.Time       `json:"created_at"` // 评估时间
}

// BatchItem 批量评估中的一篇文章
type BatchItem struct {
	Content string `json:"content"`
	Keyword string `json:"keyword"`
}

// BatchResult 批量评估中单篇文章的结果，Error非空时Evaluation为nil
type BatchResult struct {
	Index      int         `json:"index"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// EvaluationService 评估服务
// 负责输入校验、结果缓存和批量并发评估
type EvaluationService struct {
	cache           cache.Cache    // 结果缓存，可为nil
	cacheTTL        time.Duration  // 缓存有效期
	logger          *logrus.Logger // 日志记录器
	maxContentBytes int            // 单篇最大字节数
	maxBatchSize    int            // 批量最大篇数
	workers         int            // 批量评估并发数
}

// EvaluationOption 评估服务配置选项
type EvaluationOption func(*EvaluationService)

// NewEvaluationService 创建评估服务实例
func NewEvaluationService(opts ...EvaluationOption) *EvaluationService {
	service := &EvaluationService{
		cacheTTL:        time.Hour,
		logger:          logrus.New(),
		maxContentBytes: 1 << 20,
		maxBatchSize:    50,
		workers:         4,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// WithCache 设置结果缓存
func WithCache(c cache.Cache) EvaluationOption {
	return func(s *EvaluationService) {
		s.cache = c
	}
}

// WithCacheTTL 设置缓存时间
func WithCacheTTL(ttl time.Duration) EvaluationOption {
	return func(s *EvaluationService) {
		s.cacheTTL = ttl
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) EvaluationOption {
	return func(s *EvaluationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxContentBytes 设置单篇文章最大字节数，0表示不限制
func WithMaxContentBytes(n int) EvaluationOption {
	return func(s *EvaluationService) {
		s.maxContentBytes = n
	}
}

// WithMaxBatchSize 设置批量评估最大篇数
func WithMaxBatchSize(n int) EvaluationOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// WithWorkers 设置批量评估并发数
func WithWorkers(n int) EvaluationOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// MaxContentBytes 返回单篇文章最大字节数，0表示不限制
func (s *EvaluationService) MaxContentBytes() int {
	return s.maxContentBytes
}

// MaxBatchSize 返回批量评估最大篇数
func (s *EvaluationService) MaxBatchSize() int {
	return s.maxBatchSize
}

// validate 检查单篇输入
func (s *EvaluationService) validate(content, keyword string) error {
	if strings.TrimSpace(content) == "" {
		return models.ErrEmptyContent
	}
	if strings.TrimSpace(keyword) == "" {
		return models.ErrEmptyKeyword
	}
	if s.maxContentBytes > 0 && len(content) > s.maxContentBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", models.ErrContentTooLarge, len(content), s.maxContentBytes)
	}
	return nil
}

// Evaluate 评估一篇文章
// 相同的正文和关键词直接复用缓存中的报告
func (s *EvaluationService) Evaluate(ctx context.Context, content, keyword string) (*Evaluation, error) {
	if err := s.validate(content, keyword); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.EvaluationKey(content, seo.NewKeyword(keyword).Phrase())
	if report, ok := s.lookup(ctx, key); ok {
		return newEvaluation(report, true), nil
	}

	start := time.Now()
	report := seo.Analyze(content, keyword)
	eval := newEvaluation(report, false)

	s.logger.WithFields(logrus.Fields{
		"evaluation_id": eval.ID,
		"keyword":       report.Keyword,
		"words":         report.Stats.WordCount,
		"green":         eval.Summary.Green,
		"orange":        eval.Summary.Orange,
		"red":           eval.Summary.Red,
		"duration":      time.Since(start).String(),
	}).Info("Article evaluated")

	s.store(ctx, key, report)
	return eval, nil
}

// EvaluateFile 解析上传的文档后评估
func (s *EvaluationService) EvaluateFile(ctx context.Context, r io.Reader, filename, keyword string) (*Evaluation, error) {
	parser, err := document.ParserFactory(filename)
	if err != nil {
		return nil, err
	}

	content, err := parser.ParseReader(r, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename": filename,
		"type":     document.DetectContentType(filename),
		"bytes":    len(content),
	}).Debug("Document parsed")

	return s.Evaluate(ctx, content, keyword)
}

// EvaluateBatch 并发评估多篇文章，结果顺序与输入一致
// 单篇失败只记录在对应结果中；上下文取消时未处理的文章记录取消原因并返回ctx的错误
func (s *EvaluationService) EvaluateBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyBatch
	}
	if len(items) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d items, limit %d", models.ErrBatchTooLarge, len(items), s.maxBatchSize)
	}

	results := make([]BatchResult, len(items))
	jobs := make(chan int, len(items))
	for i := range items {
		results[i].Index = i
		jobs <- i
	}
	close(jobs)

	workers := s.workers
	if len(items) < workers {
		workers = len(items)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i].Error = err.Error()
					continue
				}
				eval, err := s.Evaluate(ctx, items[i].Content, items[i].Keyword)
				if err != nil {
					results[i].Error = err.Error()
					continue
				}
				results[i].Evaluation = eval
			}
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	s.logger.WithFields(logrus.Fields{
		"items":   len(items),
		"failed":  failed,
		"workers": workers,
	}).Info("Batch evaluated")

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// lookup 从缓存读取报告，读取或解析失败时视为未命中
func (s *EvaluationService) lookup(ctx context.Context, key string) (seo.Report, bool) {
	if s.cache == nil {
		return seo.Report{}, false
	}

	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read evaluation cache")
		return seo.Report{}, false
	}
	if !found {
		return seo.Report{}, false
	}

	var report seo.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.logger.WithError(err).Warn("Discarding malformed cached evaluation")
		_ = s.cache.Delete(ctx, key)
		return seo.Report{}, false
	}
	return report, true
}

// store 写入缓存，失败只记录日志
func (s *EvaluationService) store(ctx context.Context, key string, report seo.Report) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode evaluation for cache")
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to write evaluation cache")
	}
}

func newEvaluation(report seo.Report, cached bool) *Evaluation {
	return &Evaluation{
		ID:        uuid.New().String(),
		Keyword:   report.Keyword,
		Result:    report.Result,
		Stats:     report.Stats,
		Summary:   report.Result.Summary(),
		NeedsWork: report.Result.Needing(),
		Cached:    cached,
		CreatedAt: time.Now(),
	}
}
