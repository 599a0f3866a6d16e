package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"regexp"

	"blogapi/images"

	"github.com/gin-gonic/gin"
)

var imageMime = regexp.MustCompile(`^image/(png|jpg|jpeg)$`)

// PostImage accepts a single multipart image upload and stores it under dir
// with a timestamp-prefixed filename. Files with a non-image mime type are
// silently ignored, not rejected. An optional oldPath form field removes the
// file being replaced.
func PostImage(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userId") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User unauthenticated"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil || !imageMime.MatchString(file.Header.Get("Content-Type")) {
			c.JSON(http.StatusOK, gin.H{"message": "No file provided!"})
			return
		}

		if oldPath := c.PostForm("oldPath"); oldPath != "" {
			images.Remove(dir, oldPath)
		}

		filename := images.Filename(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
			log.Printf("PostImage save error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store image"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Image uploaded",
			"filePath": filepath.ToSlash(filepath.Join("images", filename)),
		})
	}
}
