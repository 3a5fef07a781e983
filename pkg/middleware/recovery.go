package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalErrorMessage はパニック発生時にクライアントへ返すメッセージ。
const internalErrorMessage = "internal server error"

// Recovery はパニックからの回復を行うGinミドルウェアを返す。
// パニック発生時にログを出力し、{"success":false,"error":...} の形式で500エラーを返す。
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] request_id=%s %s %s: %v", GetRequestID(c), c.Request.Method, c.Request.URL.Path, r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   internalErrorMessage,
				})
			}
		}()
		c.Next()
	}
}
