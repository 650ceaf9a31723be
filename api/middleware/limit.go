package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BodyLimit 限制请求体大小，limit<=0时不限制
// 声明的Content-Length超限时直接拒绝，否则读取超过limit字节时报错
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			log.WithFields(logrus.Fields{
				FieldTraceID:     GetTraceID(c),
				FieldPath:        c.Request.URL.Path,
				"content_length": c.Request.ContentLength,
				"limit":          limit,
			}).Warn("Request body rejected before reading")
			HandleError(c, &http.MaxBytesError{Limit: limit})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
