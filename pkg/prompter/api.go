package prompter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/NethermindEth/art-prompter/pkg/prompter/category"
	"github.com/NethermindEth/art-prompter/pkg/prompter/composer"
)

const shutdownTimeout = 5 * time.Second

type generateRequest struct {
	Mode      string `json:"mode"`
	Theme     string `json:"theme"`
	Technique string `json:"technique"`
	Style     string `json:"style"`
}

type batchRequest struct {
	generateRequest
	Count int `json:"count"`
}

func (r generateRequest) selection() category.Selection {
	return category.Selection{
		Theme:     r.Theme,
		Technique: r.Technique,
		Style:     r.Style,
	}
}

func (p *Prompter) generateRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Categories())
	})

	router.POST("/prompts", func(c *gin.Context) {
		var req generateRequest
		if err := bindRequest(c, &req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		mode, err := composer.ParseMode(req.Mode)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		generated, err := p.Generate(c.Request.Context(), mode, req.selection())
		if err != nil {
			respondError(c, statusForError(err), err)
			return
		}

		c.JSON(http.StatusOK, generated)
	})

	router.POST("/prompts/batch", func(c *gin.Context) {
		var req batchRequest
		if err := bindRequest(c, &req); err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		mode, err := composer.ParseMode(req.Mode)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}

		generated, err := p.GenerateBatch(c.Request.Context(), mode, req.selection(), req.Count)
		if err != nil {
			respondError(c, statusForError(err), err)
			return
		}

		c.JSON(http.StatusOK, generated)
	})

	router.GET("/prompts/recent", func(c *gin.Context) {
		c.JSON(http.StatusOK, p.Recent())
	})

	return router
}

// bindRequest accepts an empty body, which means a local prompt.
func bindRequest(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, category.ErrUnknownLabel),
		errors.Is(err, composer.ErrUnknownMode),
		errors.Is(err, ErrInvalidBatchSize):
		return http.StatusBadRequest
	case errors.Is(err, composer.ErrConfigurationMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, composer.ErrExternalGenerationFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (p *Prompter) GetRouter() *gin.Engine {
	return p.apiRouter
}

// Start serves the API until ctx is cancelled, then shuts the server down.
func (p *Prompter) Start(ctx context.Context) error {
	slog.Info("starting server", "port", p.apiIpPort)

	if p.apiIpPort == "" {
		slog.Info("api ip port is empty, skipping server")
		return nil
	}

	server := &http.Server{
		Addr:    p.apiIpPort,
		Handler: p.apiRouter,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		return nil
	})

	err := g.Wait()
	p.batchPool.StopAndWait()

	return err
}
