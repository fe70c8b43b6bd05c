// Package httpapi exposes the user and contact services over HTTP/JSON.
// It owns the router, the bearer-token middleware, and the mapping from
// service sentinels to status codes; no business logic lives here.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
)

// UserProvider is the slice of the user service the transport needs.
type UserProvider interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, userID string) error
	GetCurrent(ctx context.Context, userID string) (*models.User, error)
	UpdateSubscription(ctx context.Context, userID, subscription string) (*models.User, error)
	Verify(ctx context.Context, verificationToken string) error
	ResendVerification(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, userID string, body io.Reader, contentType string) (string, error)
}

// ContactProvider is the slice of the contact service the transport needs.
// Every call carries the authenticated owner id.
type ContactProvider interface {
	List(ctx context.Context, ownerID string, page, limit int, favorite *bool) ([]*models.Contact, error)
	Get(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Create(ctx context.Context, ownerID, name, email, phone string, favorite bool) (*models.Contact, error)
	Update(ctx context.Context, ownerID, id string, upd contacts.Update) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Contact, error)
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error)
}

type Server struct {
	address  string
	users    UserProvider
	contacts ContactProvider
	logger   logging.Logger
}

func NewServer(a string, l logging.Logger, us UserProvider, cs ContactProvider) (*Server, error) {
	return &Server{
		address:  a,
		logger:   l.With("module", "http_server"),
		users:    us,
		contacts: cs,
	}, nil
}

// Handler builds the router. Exposed separately from Run so tests can drive
// it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		s.logger.Error(c.Request.Context(), "panic while handling request", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	api := r.Group("/api")

	users := api.Group("/users")
	users.POST("", s.handleRegister)
	users.POST("/login", s.handleLogin)
	users.POST("/logout", s.authRequired, s.handleLogout)
	users.GET("/current", s.authRequired, s.handleCurrent)
	users.PATCH("", s.authRequired, s.handleUpdateSubscription)
	users.GET("/verify/:verificationToken", s.handleVerify)
	users.POST("/verify", s.handleResendVerification)
	users.PATCH("/avatars", s.authRequired, s.handleUpdateAvatar)

	cts := api.Group("/contacts", s.authRequired)
	cts.GET("", s.handleListContacts)
	cts.POST("", s.handleCreateContact)
	cts.GET("/:contactId", s.handleGetContact)
	cts.PUT("/:contactId", s.handleUpdateContact)
	cts.DELETE("/:contactId", s.handleDeleteContact)
	cts.PATCH("/:contactId/favorite", s.handleSetFavorite)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// serverError hides the cause from the client and logs it server-side.
func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
