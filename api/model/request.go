package model

import (
	"mime/multipart"
)

// EvaluateRequest 单篇文章评估请求
type EvaluateRequest struct {
	Content string `json:"content" binding:"required,notblank"` // 文章内容（markdown风格文本）
	Keyword string `json:"keyword" binding:"required,notblank"` // 焦点关键词
	Preview *bool  `json:"preview" binding:"omitempty"`         // 是否返回HTML预览，未提供时使用服务默认值
}

// EvaluateFileRequest 上传文档评估请求
type EvaluateFileRequest struct {
	File    *multipart.FileHeader `form:"file" binding:"required"`             // 文件对象
	Keyword string                `form:"keyword" binding:"required,notblank"` // 焦点关键词
}

// BatchItemRequest 批量评估中的一篇文章
// 单篇内容在服务层逐条校验，便于返回逐条错误
type BatchItemRequest struct {
	Content string `json:"content"`
	Keyword string `json:"keyword"`
}

// EvaluateBatchRequest 批量评估请求
type EvaluateBatchRequest struct {
	Items []BatchItemRequest `json:"items" binding:"required,min=1,dive"` // 文章列表
}
