package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"user-directory/internal/domain"
	"user-directory/internal/service"
)

func (h *Handler) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))
	if perPage < 1 {
		perPage = service.DefaultPerPage
	}

	req := service.ListRequest{
		Query:   c.Query("q"),
		Page:    page,
		PerPage: perPage,
		NewIDs:  parseIDList(c.Query("new_ids")),
	}

	listing, err := h.people.List(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("list users: %v", err)
		c.HTML(http.StatusInternalServerError, "users.html", gin.H{
			"msg":         "Failed to load users",
			"page":        1,
			"total_pages": 1,
		})
		return
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"users":       listing.People,
		"q":           req.Query,
		"page":        listing.Page,
		"per_page":    perPage,
		"prev_page":   listing.Page - 1,
		"next_page":   listing.Page + 1,
		"total_pages": listing.TotalPages,
		"highlighted": listing.Highlighted,
		"new_count":   len(listing.Highlighted),
		"msg":         c.Query("msg"),
	})
}

func (h *Handler) addUser(c *gin.Context) {
	person, err := h.personFromForm(c)
	if err != nil {
		redirectWithMsg(c, "/users/", err.Error())
		return
	}

	if _, err := h.people.Create(c.Request.Context(), person); err != nil {
		if errors.Is(err, service.ErrPersonExists) {
			redirectWithMsg(c, "/users/", "User already exists")
			return
		}
		h.logger.Errorf("create user: %v", err)
		redirectWithMsg(c, "/users/", "Error saving user")
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/")
}

func (h *Handler) editUserPage(c *gin.Context) {
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

	c.HTML(http.StatusOK, "edit_user.html", gin.H{"user": person})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := h.personFromForm(c)
	if err != nil {
		redirectWithMsg(c, "/users/", err.Error())
		return
	}
	person.ID = id

	if err := h.people.Update(c.Request.Context(), person); err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			redirectWithMsg(c, "/users/", "User not found")
			return
		}
		h.logger.Errorf("update user %d: %v", id, err)
		redirectWithMsg(c, "/users/", "Error saving user")
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/")
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	person, err := h.people.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPersonNotFound) {
			redirectWithMsg(c, "/users/", "User not found")
			return
		}
		h.logger.Errorf("delete user %d: %v", id, err)
		redirectWithMsg(c, "/users/", "Error deleting user")
		return
	}

	for _, path := range []string{person.ImagePath, person.ResumePath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			h.logger.Warnf("remove stored file %s: %v", path, err)
		}
	}
	h.removeArchivedDocument(person.ID)

	c.Redirect(http.StatusSeeOther, "/users/")
}

func (h *Handler) importPage(c *gin.Context) {
	c.HTML(http.StatusOK, "upload_users.html", gin.H{"msg": c.Query("msg")})
}

func (h *Handler) importUsersCSV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		redirectWithMsg(c, "/upload_users", "CSV file is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Errorf("open csv upload: %v", err)
		redirectWithMsg(c, "/upload_users", "Failed to read CSV")
		return
	}
	defer f.Close()

	ids, err := h.people.ImportCSV(c.Request.Context(), f)
	if err != nil {
		h.logger.Errorf("import csv: %v", err)
		redirectWithMsg(c, "/upload_users", "Import failed: "+err.Error())
		return
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	c.Redirect(http.StatusSeeOther, "/users/?new_ids="+strings.Join(parts, ","))
}

// personFromForm reads the six display fields plus optional image/resume
// uploads from a multipart form. Absent files leave the paths empty.
func (h *Handler) personFromForm(c *gin.Context) (*domain.Person, error) {
	age, err := strconv.Atoi(strings.TrimSpace(c.PostForm("age")))
	if err != nil {
		return nil, errors.New("Invalid age")
	}

	imagePath, err := h.saveUpload(c, "image")
	if err != nil {
		h.logger.Errorf("save image upload: %v", err)
		return nil, errors.New("Failed to store image")
	}
	resumePath, err := h.saveUpload(c, "pdf")
	if err != nil {
		h.logger.Errorf("save resume upload: %v", err)
		return nil, errors.New("Failed to store resume")
	}

	return &domain.Person{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Age:        age,
		City:       c.PostForm("city"),
		Gender:     c.PostForm("gender"),
		Skills:     strings.Join(c.PostFormArray("skills"), ","),
		ImagePath:  imagePath,
		ResumePath: resumePath,
	}, nil
}

// saveUpload stores an optional multipart file under the uploads directory,
// keeping the client-supplied filename like the rest of the upload tree.
func (h *Handler) saveUpload(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	if fh.Filename == "" {
		return "", nil
	}

	dst := filepath.Join(h.uploadsDir, filepath.Base(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return filepath.ToSlash(dst), nil
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		redirectWithMsg(c, "/users/", "Invalid user id")
		return 0, false
	}
	return id, true
}

func parseIDList(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
