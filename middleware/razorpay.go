package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/razorpay/razorpay-go/utils"
)

// WebhookBodyKey is where the verified raw body is stored for the handler,
// which must parse exactly the bytes that were signed.
const WebhookBodyKey = "webhook_body"

// VerifyRazorpayWebhook checks the X-Razorpay-Signature HMAC before the
// payment webhook handler runs.
func VerifyRazorpayWebhook(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader("X-Razorpay-Signature")
		if signature == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing webhook signature"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<16))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !utils.VerifyWebhookSignature(string(body), signature, secret) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Set(WebhookBodyKey, body)
		c.Next()
	}
}
