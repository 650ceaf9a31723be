package models

import "errors"

var (
	// ErrEmptyContent 文章内容为空
	ErrEmptyContent = errors.New("content is empty")

	// ErrEmptyKeyword 关键词为空
	ErrEmptyKeyword = errors.New("keyword is empty")

	// ErrContentTooLarge 文章超过允许的大小
	ErrContentTooLarge = errors.New("content exceeds size limit")

	// ErrUnsupportedDocument 不支持的文档类型
	ErrUnsupportedDocument = errors.New("unsupported document type")

	// ErrBatchTooLarge 批量评估篇数超过限制
	ErrBatchTooLarge = errors.New("batch exceeds size limit")

	// ErrEmptyBatch 批量评估没有任何文章
	ErrEmptyBatch = errors.New("batch is empty")
)
