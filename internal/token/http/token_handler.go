// Package http provides HTTP handlers for token generation and inspection.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/randtoken/internal/httputil"
	"github.com/allisson/randtoken/internal/token/domain"
	"github.com/allisson/randtoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
	customValidation "github.com/allisson/randtoken/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// bind decodes the JSON body into req and runs its validation, writing the error
// response itself. An empty body, with or without a Content-Length, is treated as an
// empty object.
func (h *TokenHandler) bind(c *gin.Context, req interface{ Validate() error }) bool {
	if c.Request.Body != nil {
		if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return false
		}
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}

	return true
}

// GenerateHandler generates one token, or count tokens when count is present.
// POST /v1/tokens - Returns 201 Created with the tokens and their parameters.
func (h *TokenHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateTokenRequest
	if !h.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()

	if req.Count == nil {
		token, err := h.tokenUseCase.Generate(ctx, req.Params())
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusCreated, dto.MapTokenToResponse(token))
		return
	}

	batch, err := h.tokenUseCase.GenerateBatch(ctx, req.Params(), *req.Count)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	c.JSON(http.StatusCreated, dto.MapBatchToResponse(batch))
}

// DescribeHandler returns the derived parameters for a configuration.
// POST /v1/tokens/describe - Returns 200 OK without consuming entropy.
func (h *TokenHandler) DescribeHandler(c *gin.Context) {
	var req dto.DescribeRequest
	if !h.bind(c, &req) {
		return
	}

	cfg, err := h.tokenUseCase.Describe(c.Request.Context(), req.Params())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapConfigToResponse(cfg))
}

// ValidateHandler checks whether a token has the shape produced by a configuration.
// POST /v1/tokens/validate - Returns 200 OK with {"valid": bool}.
func (h *TokenHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest
	if !h.bind(c, &req) {
		return
	}

	valid, err := h.tokenUseCase.Validate(c.Request.Context(), req.Token, req.Params())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateTokenResponse{Valid: valid})
}

// VerifyHandler compares a token against a digest returned at generation time.
// POST /v1/tokens/verify - Returns 200 OK with {"match": bool}.
func (h *TokenHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyTokenRequest
	if !h.bind(c, &req) {
		return
	}

	match := h.tokenUseCase.Verify(c.Request.Context(), req.Token, req.Hash)
	c.JSON(http.StatusOK, dto.VerifyTokenResponse{Match: match})
}

// ListPresetsHandler lists the built-in alphabets.
// GET /v1/presets - Returns 200 OK.
func (h *TokenHandler) ListPresetsHandler(c *gin.Context) {
	presets := h.tokenUseCase.Presets(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapPresetsToListResponse(presets))
}

// GetPresetHandler returns a single preset by name.
// GET /v1/presets/:name - Returns 200 OK or 404 Not Found.
func (h *TokenHandler) GetPresetHandler(c *gin.Context) {
	name := c.Param("name")
	alphabet, err := domain.LookupPreset(name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	resp := dto.MapPresetsToListResponse([]domain.Preset{{Name: name, Alphabet: alphabet}})
	c.JSON(http.StatusOK, resp.Data[0])
}
