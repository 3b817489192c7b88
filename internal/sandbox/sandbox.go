// Package sandbox is an in-process emulator of the NPSquare API surface the
// client consumes: token handshake, logout, reference data and sales-document
// submission. It exists for development and integration tests; it keeps no
// state beyond its configuration.
package sandbox

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mambusrl/npsquare-go/internal/model"
	"github.com/mambusrl/npsquare-go/internal/validation"
)

// Config holds sandbox configuration
type Config struct {
	Address        string
	KeyInstitution string
	Username       string
	Password       string
	SigningKey     []byte
	TokenTTL       time.Duration
	Debug          bool
	Logger         zerolog.Logger
}

// Server emulates one NPSquare installation
type Server struct {
	config *Config
	router *gin.Engine
	logger zerolog.Logger
}

// NewServer creates a sandbox for the given installation
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if config.TokenTTL == 0 {
		config.TokenTTL = time.Hour
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: config,
		router: router,
		logger: config.Logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/token", s.handleToken)

	authed := s.router.Group("/", s.bearerAuth)
	{
		authed.PATCH("/logout", s.handleLogout)
		authed.GET("/reference-data/payment-methods", s.listPaymentMethods)
		authed.GET("/reference-data/vat-rates", s.listVATRates)
		authed.GET("/reference-data/cost-centers", s.listCostCenters)
		authed.GET("/reference-data/sub-accounts", s.listSubAccounts)
		authed.GET("/documents/types", s.listDocumentTypes)
		authed.POST("/documents/sales", s.handleSubmitSalesDoc)
	}
}

// Handler returns the underlying handler, for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the sandbox on the configured address
func (s *Server) Run() error {
	s.logger.Info().Str("address", s.config.Address).Msg("sandbox listening")
	return s.router.Run(s.config.Address)
}

func (s *Server) handleToken(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	clientID := c.PostForm("client_id")

	if username != s.config.Username || password != s.config.Password || clientID != s.config.KeyInstitution {
		s.logger.Debug().Str("username", username).Msg("token request rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "npsquare-sandbox",
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	})

	signed, err := token.SignedString(s.config.SigningKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "token signing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": signed, "token_type": "bearer"})
}

// bearerAuth verifies the Authorization header against the sandbox signing
// key, mirroring the platform's 401 behavior.
func (s *Server) bearerAuth(c *gin.Context) {
	const prefix = "Bearer "
	header := c.GetHeader("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
		return
	}

	_, err := jwt.Parse(header[len(prefix):], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.config.SigningKey, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
		return
	}

	c.Next()
}

func (s *Server) handleLogout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSubmitSalesDoc(c *gin.Context) {
	if c.Query("keyInstitution") != s.config.KeyInstitution {
		c.JSON(http.StatusNotFound, gin.H{"detail": "unknown institution"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read body"})
		return
	}

	doc, err := model.ParseSalesDoc(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, detailResponse([]validation.Violation{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: validation.TypeValueError,
		}}))
		return
	}

	if violations := validation.CheckDocumentDeep(doc); len(violations) > 0 {
		s.logger.Debug().Int("violations", len(violations)).Msg("document rejected")
		c.JSON(http.StatusUnprocessableEntity, detailResponse(violations))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": uuid.NewString(), "status": "accepted"})
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, pageResponse(defaultPaymentMethods))
}

func (s *Server) listVATRates(c *gin.Context) {
	c.JSON(http.StatusOK, pageResponse(defaultVATRates))
}

func (s *Server) listCostCenters(c *gin.Context) {
	c.JSON(http.StatusOK, pageResponse(defaultCostCenters))
}

func (s *Server) listSubAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, pageResponse(defaultSubAccounts))
}

func (s *Server) listDocumentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, pageResponse(defaultDocumentTypes))
}

func pageResponse[T any](items []T) gin.H {
	return gin.H{"items": items, "page": 1, "size": 100, "total": len(items)}
}

func detailResponse(violations []validation.Violation) gin.H {
	return gin.H{"detail": violations}
}
