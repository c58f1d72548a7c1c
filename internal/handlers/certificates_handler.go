package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-certify/internal/issuance"
	"github.com/imrishuroy/go-certify/internal/validation"
)

// MessageInternal is returned for failures that are not classified.
const MessageInternal = "Internal server error."

// HandlerConfig groups dependencies for the certificates handler.
type HandlerConfig struct {
	Service *issuance.Service
	Logger  *zap.Logger
}

// RegisterCertificateRoutes registers the issuance and validation routes.
func RegisterCertificateRoutes(r gin.IRoutes, cfg HandlerConfig) {
	v := validation.New()
	log := cfg.Logger
	if log == nil {
		log = zap.L()
	}

	r.POST("/generate-certificate", func(c *gin.Context) {
		var req validation.GenerateCertificateRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		res, err := cfg.Service.Issue(c.Request.Context(), issuance.IssueRequest{
			ID:        req.ID,
			Name:      req.Name,
			Grade:     req.Grade,
			RequestID: requestID(c),
		})
		if err != nil {
			var depErr *issuance.DependencyError
			if errors.As(err, &depErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"message": issuance.MessageFailed,
					"error":   depErr.Err.Error(),
				})
				return
			}
			log.Error("issue certificate", zap.String("certificate_id", req.ID), zap.String("request_id", requestID(c)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": MessageInternal})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": res.Message,
			"url":     res.URL,
		})
	})

	r.GET("/validate-certification/:id", func(c *gin.Context) {
		id := c.Param("id")

		res, err := cfg.Service.Validate(c.Request.Context(), id)
		if err != nil {
			log.Error("validate certificate", zap.String("certificate_id", id), zap.String("request_id", requestID(c)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": MessageInternal})
			return
		}

		if !res.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": res.Message,
				"id":      res.ID,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      res.Message,
			"id":           res.Record.ID,
			"name":         res.Record.Name,
			"certified_at": res.Record.CreatedAt,
			"grade":        res.Record.Grade,
		})
	})
}
