package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/fyerfyer/seo-evaluator/api/middleware"
	"github.com/fyerfyer/seo-evaluator/api/model"
	"github.com/fyerfyer/seo-evaluator/internal/document"
	"github.com/fyerfyer/seo-evaluator/internal/seo"
	"github.com/fyerfyer/seo-evaluator/internal/services"
)

// EvaluationHandler 处理评估相关的API请求
type EvaluationHandler struct {
	service   *services.EvaluationService // 评估服务
	logger    *logrus.Logger              // 日志记录器
	preview   bool                        // 默认是否返回HTML预览
	cacheType string                      // 缓存类型，用于健康检查
	maxUpload int64                       // 上传文件请求体上限，0表示不限制
}

// bodyOverhead JSON转义和请求包装允许的额外字节数
const bodyOverhead = 64 << 10

// HandlerOption 评估处理器配置选项
type HandlerOption func(*EvaluationHandler)

// WithDefaultPreview 设置请求未指定时是否返回预览
func WithDefaultPreview(preview bool) HandlerOption {
	return func(h *EvaluationHandler) {
		h.preview = preview
	}
}

// WithCacheType 设置健康检查中报告的缓存类型
func WithCacheType(cacheType string) HandlerOption {
	return func(h *EvaluationHandler) {
		h.cacheType = cacheType
	}
}

// WithMaxUploadBytes 设置上传文档请求体的最大字节数
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *EvaluationHandler) {
		h.maxUpload = n
	}
}

// NewEvaluationHandler 创建新的评估处理器
func NewEvaluationHandler(service *services.EvaluationService, opts ...HandlerOption) *EvaluationHandler {
	h := &EvaluationHandler{
		service:   service,
		logger:    middleware.GetLogger(),
		cacheType: "disabled",
		maxUpload: 10 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Evaluate 评估单篇文章
// POST /api/evaluate
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req model.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}

	eval, err := h.service.Evaluate(c.Request.Context(), req.Content, req.Keyword)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp := model.EvaluateResponse{Evaluation: eval}
	preview := h.preview
	if req.Preview != nil {
		preview = *req.Preview
	}
	if preview {
		resp.Preview = document.RenderPreview(req.Content)
	}

	c.JSON(http.StatusOK, h.success(c, resp))
}

// EvaluateFile 评估上传的文档
// POST /api/evaluate/file
func (h *EvaluationHandler) EvaluateFile(c *gin.Context) {
	var req model.EvaluateFileRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindFailed(c, err)
		return
	}

	filename := req.File.Filename
	if document.DetectContentType(filename) == document.Unknown {
		middleware.HandleError(c, middleware.NewValidationError(
			"不支持的文件类型",
			"仅支持 "+strings.Join(document.SupportedExtensions(), ", "),
		))
		return
	}

	file, err := req.File.Open()
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":    err.Error(),
			"filename": filename,
		}).Error("Failed to open uploaded file")
		middleware.HandleError(c, middleware.NewInternalError("无法打开上传的文件", err.Error()))
		return
	}
	defer file.Close()

	eval, err := h.service.EvaluateFile(c.Request.Context(), file, filename, req.Keyword)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"evaluation_id": eval.ID,
		"filename":      filename,
		"size":          req.File.Size,
	}).Info("Uploaded document evaluated")

	c.JSON(http.StatusOK, h.success(c, model.FileEvaluateResponse{
		Evaluation: eval,
		FileName:   filename,
		FileSize:   req.File.Size,
	}))
}

// EvaluateBatch 批量评估多篇文章
// POST /api/evaluate/batch
func (h *EvaluationHandler) EvaluateBatch(c *gin.Context) {
	var req model.EvaluateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindFailed(c, err)
		return
	}

	items := make([]services.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = services.BatchItem{Content: item.Content, Keyword: item.Keyword}
	}

	results, err := h.service.EvaluateBatch(c.Request.Context(), items)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp := model.BatchEvaluateResponse{Total: len(results), Results: results}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}

	c.JSON(http.StatusOK, h.success(c, resp))
}

// ListCriteria 返回评估项及判定条件
// GET /api/criteria
func (h *EvaluationHandler) ListCriteria(c *gin.Context) {
	criteria := seo.Criteria()
	resp := model.CriteriaResponse{
		Criteria: make([]model.CriterionInfo, len(criteria)),
		Verdicts: []string{seo.Red.String(), seo.Orange.String(), seo.Green.String()},
	}
	for i, cr := range criteria {
		resp.Criteria[i] = model.CriterionInfo{
			Index:      i,
			Key:        cr.String(),
			Thresholds: seo.Describe(cr),
		}
	}

	c.JSON(http.StatusOK, h.success(c, resp))
}

// Health 健康检查
// GET /api/health
func (h *EvaluationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.success(c, model.HealthResponse{
		Status: "ok",
		Cache:  h.cacheType,
	}))
}

// BodyLimit 单篇评估请求体上限
// JSON转义最多使内容翻倍，另加固定余量
func (h *EvaluationHandler) BodyLimit() int64 {
	maxContent := int64(h.service.MaxContentBytes())
	if maxContent <= 0 {
		return 0
	}
	return 2*maxContent + bodyOverhead
}

// BatchBodyLimit 批量评估请求体上限
func (h *EvaluationHandler) BatchBodyLimit() int64 {
	single := h.BodyLimit()
	if single <= 0 || h.service.MaxBatchSize() <= 0 {
		return 0
	}
	return single * int64(h.service.MaxBatchSize())
}

// UploadLimit 上传文档请求体上限
func (h *EvaluationHandler) UploadLimit() int64 {
	return h.maxUpload
}

// bindFailed 请求体超限返回413，其余绑定错误返回400
func (h *EvaluationHandler) bindFailed(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		middleware.HandleError(c, err)
		return
	}
	middleware.HandleError(c, middleware.NewValidationError("无效的请求参数", err.Error()))
}

func (h *EvaluationHandler) success(c *gin.Context, data interface{}) *model.Response {
	resp := model.NewSuccessResponse(data)
	resp.TraceID = middleware.GetTraceID(c)
	return resp
}

// RegisterValidators 向gin的校验引擎注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("notblank", notBlank)
}

// notBlank 字符串去除首尾空白后不能为空
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	default:
		return !field.IsZero()
	}
}
