package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20

func (h *Handler) storageReady(c *gin.Context) bool {
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return false
	}
	return true
}

// UploadFile stores a multipart "file" under bucket/path. The caller picks a
// collision-free path, typically by embedding a timestamp.
func (h *Handler) UploadFile(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	bucket, path := c.PostForm("bucket"), c.PostForm("path")
	if bucket == "" || path == "" {
		badRequest(c, "bucket and path are required")
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	if fh.Size > maxUploadSize {
		badRequest(c, "file is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		h.respondError(c, err)
		return
	}

	stored, err := h.Storage.Upload(c.Request.Context(), bucket, path, data, fh.Header.Get("Content-Type"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Metrics.ObserveUpload(len(data))
	c.JSON(http.StatusCreated, gin.H{"path": stored, "url": h.Storage.PublicURL(bucket, stored)})
}

func (h *Handler) PublicURL(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	bucket, path := c.Query("bucket"), c.Query("path")
	if bucket == "" || path == "" {
		badRequest(c, "bucket and path are required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": h.Storage.PublicURL(bucket, path)})
}

// SignedURL answers with a null url when signing fails.
func (h *Handler) SignedURL(c *gin.Context) {
	if !h.storageReady(c) {
		return
	}
	bucket, path := c.Query("bucket"), c.Query("path")
	if bucket == "" || path == "" {
		badRequest(c, "bucket and path are required")
		return
	}
	var ttl time.Duration
	if raw := c.Query("expires_in"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			badRequest(c, "expires_in must be a positive number of seconds")
			return
		}
		ttl = time.Duration(secs) * time.Second
	}

	u, ok := h.Storage.SignedURL(c.Request.Context(), bucket, path, ttl)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"url": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": u})
}
