package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// AuditLogger logs write operations against business resources
func AuditLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"audit":          true,
			"timestamp":      start.Format(time.RFC3339Nano),
			"request_id":     c.GetString(RequestIDKey),
			"username":       c.GetString("username"),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status_code":    c.Writer.Status(),
			"client_ip":      c.ClientIP(),
			"operation_time": time.Since(start).Milliseconds(),
		}

		switch c.Request.Method {
		case "POST":
			fields["operation"] = "CREATE"
		case "PUT", "PATCH":
			fields["operation"] = "UPDATE"
		case "DELETE":
			fields["operation"] = "DELETE"
		}

		path := c.Request.URL.Path
		switch {
		case strings.Contains(path, "/invoices"):
			fields["resource_type"] = "invoice"
		case strings.Contains(path, "/products"):
			fields["resource_type"] = "product"
		case strings.Contains(path, "/customers"):
			fields["resource_type"] = "customer"
		case strings.Contains(path, "/seller"):
			fields["resource_type"] = "seller"
		case strings.Contains(path, "/fiscal-year"):
			fields["resource_type"] = "fiscal_year"
		case strings.Contains(path, "/backup"):
			fields["resource_type"] = "backup"
		}

		if resourceID := extractResourceID(path); resourceID != "" {
			fields["resource_id"] = resourceID
		}

		logrus.WithFields(fields).Info("Audit log")
	}
}

func extractResourceID(path string) string {
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		if _, err := uuid.Parse(part); err == nil {
			return part
		}
	}
	return ""
}
