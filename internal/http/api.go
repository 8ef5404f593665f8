package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-directory/internal/auth"
	"user-directory/internal/document"
	"user-directory/internal/service"
	"user-directory/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	accounts     service.AccountService
	people       service.PersonService
	storage      storage.Service
	bucket       string
	keyPrefix    string
	uploadsDir   string
	downloadsDir string
	generator    document.Generator
	jwtSecret    []byte
	tokenTTL     time.Duration
	logger       *logrus.Logger
}

func NewHandler(
	accounts service.AccountService,
	people service.PersonService,
	store storage.Service,
	bucket, keyPrefix string,
	uploadsDir, downloadsDir string,
	generator document.Generator,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		accounts:     accounts,
		people:       people,
		storage:      store,
		bucket:       bucket,
		keyPrefix:    keyPrefix,
		uploadsDir:   uploadsDir,
		downloadsDir: downloadsDir,
		generator:    generator,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/login")
	})

	router.GET("/signup", h.signupPage)
	router.POST("/signup", h.signup)
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)

	protected := router.Group("/", h.requireSession())
	{
		protected.GET("/home/", h.home)
		protected.GET("/users/", h.listUsers)
		protected.POST("/add_user_form/", h.addUser)
		protected.GET("/edit_user/:id", h.editUserPage)
		protected.POST("/update_user/:id", h.updateUser)
		protected.GET("/delete_user/:id", h.deleteUser)
		protected.GET("/download_user_pdf/:id", h.downloadUserPDF)
		protected.GET("/upload_users", h.importPage)
		protected.POST("/upload_users_csv", h.importUsersCSV)
		protected.GET("/archive", h.listArchive)
	}
}

func (h *Handler) signupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"msg": c.Query("msg")})
}

func (h *Handler) signup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	_, err := h.accounts.SignUp(c.Request.Context(), email, password)
	switch {
	case err == nil:
		redirectWithMsg(c, "/login", "Signup successful")
	case errors.Is(err, auth.ErrPasswordTooLong):
		redirectWithMsg(c, "/signup", "Password too long (max 72 characters)")
	case errors.Is(err, service.ErrAccountExists):
		redirectWithMsg(c, "/signup", "User already exists")
	default:
		h.logger.Errorf("signup %s: %v", email, err)
		redirectWithMsg(c, "/signup", "Error saving user")
	}
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"msg": c.Query("msg")})
}

func (h *Handler) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	account, err := h.accounts.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Errorf("authenticate %s: %v", email, err)
		}
		redirectWithMsg(c, "/login", "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(account.Email, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Errorf("issue token for %s: %v", account.Email, err)
		redirectWithMsg(c, "/login", "Login failed")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/home/")
}

func (h *Handler) logout(c *gin.Context) {
	// Stateless tokens have no server-side session to tear down; clearing
	// the cookie is the whole operation.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	redirectWithMsg(c, "/login", "Logged out")
}

func (h *Handler) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"email": currentEmail(c)})
}

func redirectWithMsg(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}
