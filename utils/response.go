package utils

import "github.com/gin-gonic/gin"

// JSONSuccess wraps mutation responses in the standard envelope.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError carries a human-readable message only; internal detail
// stays in the logs.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}
