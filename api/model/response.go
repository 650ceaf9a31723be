package model

import (
	"github.com/fyerfyer/seo-evaluator/internal/seo"
	"github.com/fyerfyer/seo-evaluator/internal/services"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`               // 响应状态码，0表示成功
	Message string      `json:"message"`            // 响应消息
	Data    interface{} `json:"data,omitempty"`     // 响应数据，可能为空
	TraceID string      `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string) *Response {
	return &Response{
		Code:    code,
		Message: message,
	}
}

// EvaluateResponse 单篇评估响应
type EvaluateResponse struct {
	*services.Evaluation
	Preview string `json:"preview,omitempty"` // markdown渲染后的HTML
}

// FileEvaluateResponse 上传文档评估响应
type FileEvaluateResponse struct {
	*services.Evaluation
	FileName string `json:"filename"` // 文件名
	FileSize int64  `json:"size"`     // 文件大小（字节）
}

// BatchEvaluateResponse 批量评估响应
type BatchEvaluateResponse struct {
	Total     int                    `json:"total"`     // 文章总数
	Succeeded int                    `json:"succeeded"` // 评估成功数
	Failed    int                    `json:"failed"`    // 评估失败数
	Results   []services.BatchResult `json:"results"`   // 与请求顺序一致的结果
}

// CriterionInfo 评估项说明
type CriterionInfo struct {
	Index      int            `json:"index"`      // 在结果中的位置
	Key        string         `json:"key"`        // 结果中的键名
	Thresholds seo.Thresholds `json:"thresholds"` // 各结论的判定条件
}

// CriteriaResponse 评估项列表响应
type CriteriaResponse struct {
	Criteria []CriterionInfo `json:"criteria"`
	Verdicts []string        `json:"verdicts"` // 结论取值，按质量递增
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"` // 缓存类型，未启用时为disabled
}
