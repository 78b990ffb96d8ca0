// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/gcp-go-director-bakeoff/internal/telemetry"
	"github.com/jaycherian/gcp-go-director-bakeoff/internal/web"
)

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware so every request gets a server span.
	r.Use(otelgin.Middleware(config.Application.Name))

	// Permissive CORS; this is a demo service meant to be reached from
	// anywhere during development.
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		renderFormPage(c, http.StatusOK, "")
	})

	apiV1 := r.Group("/api/v1")
	{
		BakeOffRouter(apiV1)
		apiV1.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Application.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", config.Application.Port)

	// Wait for an interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed", "error", err)
	}

	log.Println("Server exiting")
}

// BakeOffRouter sets up the bake-off execution route. The endpoint accepts a
// standard form post from the page at "/" and answers with an HTML results
// page, or with the raw result as JSON when format=json is requested.
func BakeOffRouter(r *gin.RouterGroup) {
	r.POST("/bakeoff", func(c *gin.Context) {
		videoIdea := c.PostForm("video_idea")
		directors := c.PostForm("directors")

		result, err := state.bakeOffService.RunBakeOff(c.Request.Context(), videoIdea, directors)
		if err != nil {
			if c.Query("format") == "json" {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			renderErrorPage(c, err)
			return
		}

		if c.Query("format") == "json" {
			c.JSON(http.StatusOK, result)
			return
		}

		view := web.NewResultsView(state.config.Application.Name, result)
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := state.renderer.RenderResults(c.Writer, view); err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to render results page", "error", err)
			renderErrorPage(c, err)
		}
	})
}

// renderFormPage writes the submission form, prefilled with the configured
// director roster.
func renderFormPage(c *gin.Context, status int, videoIdea string) {
	view := &web.FormView{
		AppName:       state.config.Application.Name,
		FormDirectors: state.config.BakeOff.FormDirectors,
		VideoIdea:     videoIdea,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := state.renderer.RenderForm(c.Writer, view); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to render form page", "error", err)
		c.String(http.StatusInternalServerError, "failed to render page")
	}
}

// renderErrorPage writes the error panel with the full error chain in its
// collapsible details section.
func renderErrorPage(c *gin.Context, err error) {
	view := &web.ErrorView{
		AppName: state.config.Application.Name,
		Message: "The bake-off could not be completed. No partial results are shown.",
		Trace:   err.Error(),
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusInternalServerError)
	if renderErr := state.renderer.RenderError(c.Writer, view); renderErr != nil {
		slog.ErrorContext(c.Request.Context(), "failed to render error page", "error", renderErr)
		c.String(http.StatusInternalServerError, "bake-off failed: %v", err)
	}
}
