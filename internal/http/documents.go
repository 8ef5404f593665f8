package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"user-directory/internal/document"
	"user-directory/internal/domain"
	"user-directory/internal/service"
	"user-directory/internal/storage"
)

const documentTimeout = 30 * time.Second

// downloadUserPDF renders the record's profile page, merges it with the
// stored resume when one exists, and serves the result as a download named
// after the record. The merged artifact is archived to object storage when a
// bucket is configured.
func (h *Handler) downloadUserPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := h.people.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			redirectWithMsg(c, "/users/", "User not found")
			return
		}
		h.logger.Errorf("get user %d: %v", id, err)
		redirectWithMsg(c, "/users/", "Failed to load user")
		return
	}

	finalPath := filepath.Join(h.downloadsDir, fmt.Sprintf("user_%d_full.pdf", person.ID))

	ctx, cancel := context.WithTimeout(c.Request.Context(), documentTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- h.buildDocument(*person, finalPath)
	}()
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		h.logger.Errorf("build document for user %d: %v", person.ID, err)
		c.String(http.StatusInternalServerError, "failed to generate document")
		return
	}

	c.FileAttachment(finalPath, person.Name+".pdf")
	h.archiveDocument(person.ID, finalPath)
}

// buildDocument runs the generate-then-merge pipeline. The intermediate
// profile page is uuid-scoped so concurrent downloads of the same record do
// not clobber each other's work in flight.
func (h *Handler) buildDocument(person domain.Person, finalPath string) error {
	if err := os.MkdirAll(h.downloadsDir, 0o755); err != nil {
		return fmt.Errorf("create downloads dir: %w", err)
	}

	resumePath, resumeState := document.ResolveAsset(person.ResumePath, "")
	resumeMissing := resumeState != document.AssetPresent
	if resumeMissing {
		resumePath = ""
	}

	profileTmp := filepath.Join(h.downloadsDir, fmt.Sprintf("profile-%s.pdf", uuid.NewString()))
	defer os.Remove(profileTmp)

	if err := h.generator.Generate(person, resumeMissing, profileTmp); err != nil {
		return err
	}
	return document.Merge(profileTmp, resumePath, finalPath)
}

// archiveDocument uploads the merged artifact to object storage, best effort.
func (h *Handler) archiveDocument(id int64, localPath string) {
	if h.storage == nil || h.bucket == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), documentTimeout)
	defer cancel()

	key := path.Join(h.keyPrefix, fmt.Sprintf("user_%d_full.pdf", id))
	if _, err := h.storage.UploadFile(ctx, localPath, storage.UploadOptions{Bucket: h.bucket, Key: key}); err != nil {
		h.logger.Warnf("archive document for user %d: %v", id, err)
	}
}

// removeArchivedDocument deletes the archived artifact for a deleted record,
// best effort.
func (h *Handler) removeArchivedDocument(id int64) {
	if h.storage == nil || h.bucket == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), documentTimeout)
	defer cancel()

	key := path.Join(h.keyPrefix, fmt.Sprintf("user_%d_full.pdf", id))
	if err := h.storage.DeleteObject(ctx, h.bucket, key); err != nil {
		h.logger.Warnf("remove archived document for user %d: %v", id, err)
	}
}

func (h *Handler) listArchive(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.HTML(http.StatusOK, "archive.html", gin.H{"enabled": false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), documentTimeout)
	defer cancel()

	objects, err := h.storage.ListObjects(ctx, h.bucket, h.keyPrefix)
	if err != nil {
		h.logger.Errorf("list archive: %v", err)
		c.HTML(http.StatusInternalServerError, "archive.html", gin.H{
			"enabled": true,
			"msg":     "Failed to list archived documents",
		})
		return
	}

	c.HTML(http.StatusOK, "archive.html", gin.H{
		"enabled": true,
		"objects": objects,
	})
}
