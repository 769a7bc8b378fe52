// Command server hosts Tak games over HTTP. The engine itself has no notion
// of concurrency or storage; this server is the arbitrating host: it keeps
// the turn log per game, replays it through the engine for every request, and
// serializes submissions inside a database transaction.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/microcosm-cc/bluemonday"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/render"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/takgame/takgo"
	"github.com/takgame/takgo/ai"
	"github.com/takgame/takgo/cmd/server/docs"
)

var (
	// Renderer is a renderer for all occasions.
	Renderer = render.New(render.Options{
		Charset:    "UTF-8",
		IndentJSON: false,
	})

	log       *zap.SugaredLogger
	db        *gorm.DB
	ugcPolicy = bluemonday.StrictPolicy()
)

// ErrorResponse is a JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a JSON confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the healthz body.
type HealthResponse struct {
	Healthy  string `json:"healthy"`
	Revision string `json:"revision,omitempty"`
}

func main() {
	if err := parseConfig(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := zap.Must(zap.NewProduction())
	if !opts.Production {
		logger = zap.Must(zap.NewDevelopment())
	}
	defer logger.Sync()
	log = logger.Sugar().Named(takgo.Service)

	log.Infow("Starting up", "host", fmt.Sprintf("http://localhost:%s", opts.Port))

	var err error
	db, err = getDB()
	if err != nil {
		log.Panicw("could not get db", zap.Error(err))
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.New(cors.Options{
		AllowCredentials:   true,
		OptionsPassthrough: true,
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:     []string{"Link"},
		MaxAge:             300,
	}).Handler)

	r.NotFound(notFoundHandler)

	r.Group(func(r chi.Router) {
		r.Use(secure.New(secure.Options{
			BrowserXssFilter:     true,
			ContentTypeNosniff:   true,
			FrameDeny:            true,
			HostsProxyHeaders:    []string{"X-Forwarded-Host"},
			IsDevelopment:        !opts.Production,
			SSLProxyHeaders:      map[string]string{"X-Forwarded-Proto": "https"},
			SSLRedirect:          opts.Production,
			STSIncludeSubdomains: true,
			STSPreload:           true,
			STSSeconds:           315360000,
		}).Handler)

		// Public routes
		r.Get("/", rootHandler)
		r.Get("/healthz", healthCheckHandler)
		r.Method("GET", "/metrics", promhttp.Handler())
		r.Get("/swagger/doc.json", swaggerJSONHandler)
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))

		// Auth endpoints
		r.Post("/auth/register", registerHandler)
		r.Post("/auth/login", loginHandler)

		// Public game viewing (no auth required)
		r.Get("/game/{slug}", getGameHandler)
		r.Get("/game/{slug}/{turn}", getTurnHandler)

		// Protected routes requiring authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/game/new", newGameHandler)
			r.Post("/game/{slug}/move", newTurnHandler)
			r.Post("/game/{slug}/ai-move", aiTurnHandler)
		})
	})

	server := &http.Server{
		Addr:           ":" + opts.Port,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
	log.Fatal(server.ListenAndServe())
}

// renderJSON writes a JSON response, logging render failures instead of
// surfacing them; by that point the status line is already gone.
func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := Renderer.JSON(w, status, v); err != nil {
		log.Errorw("failed to render JSON", zap.Error(err))
	}
}

// requestLogger logs one line per request with status and timing.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// @Summary Get API information
// @Description Returns basic API information and available endpoints
// @Tags info
// @Produce html
// @Success 200 {string} string "HTML page with API information"
// @Router / [get]
func rootHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := docs.GetSwaggerSpec()
	if err != nil {
		log.Errorw("failed to parse swagger.json", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	html := `
<html>
  <head><title>takgo</title></head>
  <body>
    <h1>takgo</h1>
    <p>A Tak rules engine behind an HTTP API.</p>
    <p><a href="/swagger/">View Swagger Documentation</a></p>
    <ul>`
	for path, methods := range spec.Paths {
		for method, info := range methods {
			html += fmt.Sprintf("\n      <li><code>%s %s</code> — %s</li>", method, path, info.Summary)
		}
	}
	html += `
    </ul>
  </body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		log.Errorw("failed to write response", zap.Error(err))
	}
}

func swaggerJSONHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(docs.SwaggerJSON()); err != nil {
		log.Errorw("failed to write swagger spec", zap.Error(err))
	}
}

// CreateGameRequest represents the request body for creating a new game.
type CreateGameRequest struct {
	Size    int    `json:"size" example:"5"`
	Player1 string `json:"player1" example:"alice"`
	Player2 string `json:"player2" example:"bob"`
}

// CreateGameResponse returns the new game's slug.
type CreateGameResponse struct {
	Slug string `json:"slug"`
}

// @Summary Create a new game
// @Description Creates a new Tak game with the given board size (3-8)
// @Tags game
// @Accept json
// @Produce json
// @Param game body CreateGameRequest false "Game configuration"
// @Success 201 {object} CreateGameResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /game/new [post]
func newGameHandler(w http.ResponseWriter, r *http.Request) {
	data := CreateGameRequest{Size: 5}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if data.Size < takgo.MinBoardSize || data.Size > takgo.MaxBoardSize {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("board size must be between %d and %d", takgo.MinBoardSize, takgo.MaxBoardSize),
		})
		return
	}

	slug, err := createGame(db, data.Size, ugcPolicy.Sanitize(data.Player1), ugcPolicy.Sanitize(data.Player2))
	if err != nil {
		log.Errorw("could not create game", zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not create game"})
		return
	}

	gamesCreated.Inc()
	log.Infow("game created", "slug", slug, "size", data.Size)
	renderJSON(w, http.StatusCreated, CreateGameResponse{Slug: slug})
}

// @Summary Get game state
// @Description Returns the current state of a game
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Success 200 {object} StateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /game/{slug} [get]
func getGameHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	game, err := getGame(db, slug)
	if err != nil {
		renderJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such game"})
		return
	}

	state, err := replayTurns(game, -1)
	if err != nil {
		log.Errorw("could not replay game", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not replay game state"})
		return
	}

	renderJSON(w, http.StatusOK, stateResponse(game, state, len(game.Turns)))
}

// @Summary Get game state at a turn
// @Description Returns the state of a game after its first N turns
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Param turn path int true "Turn count"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /game/{slug}/{turn} [get]
func getTurnHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "slug"))
	game, err := getGame(db, slug)
	if err != nil {
		renderJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such game"})
		return
	}

	turnStr := ugcPolicy.Sanitize(chi.URLParamFromCtx(ctx, "turn"))
	upto, err := strconv.Atoi(turnStr)
	if err != nil || upto < 0 || upto > len(game.Turns) {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid turn number"})
		return
	}

	state, err := replayTurns(game, upto)
	if err != nil {
		log.Errorw("could not replay game", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not replay game state"})
		return
	}

	renderJSON(w, http.StatusOK, stateResponse(game, state, upto))
}

// @Summary Submit a turn
// @Description Validates a turn against the rules and applies it
// @Tags game
// @Accept json
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Param turn body TurnPayload true "Turn details"
// @Success 200 {object} StateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not this player's turn"
// @Failure 422 {object} ErrorResponse "Turn violates the rules"
// @Router /game/{slug}/move [post]
func newTurnHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	game, err := getGame(db, slug)
	if err != nil {
		renderJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such game"})
		return
	}

	var tp TurnPayload
	if err := json.NewDecoder(r.Body).Decode(&tp); err != nil {
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	turn, err := tp.Turn()
	if err != nil {
		turnsRejected.WithLabelValues("malformed").Inc()
		renderJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := replayTurns(game, -1)
	if err != nil {
		log.Errorw("could not replay game", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not replay game state"})
		return
	}

	if turn.Player() != state.CurrentPlayer() {
		turnsRejected.WithLabelValues("wrong_player").Inc()
		renderJSON(w, http.StatusConflict, ErrorResponse{Error: "it's not your turn"})
		return
	}

	if !state.ApplyTurn(turn) {
		turnsRejected.WithLabelValues("illegal").Inc()
		renderJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: fmt.Sprintf("illegal turn: %s", turn)})
		return
	}

	if err := insertTurn(db, game, &tp, state.CurrentPlayer()); err != nil {
		log.Errorw("could not insert turn", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not save turn"})
		return
	}

	turnsApplied.Inc()
	log.Infow("turn applied", "slug", slug, "turn", turn.String(), "user", userFromContext(r).Username)
	renderJSON(w, http.StatusOK, stateResponse(game, state, len(game.Turns)+1))
}

// @Summary Let the engine pick a turn
// @Description Chooses a random legal turn for the current player and applies it
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Success 200 {object} StateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No legal turn available"
// @Router /game/{slug}/ai-move [post]
func aiTurnHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParamFromCtx(r.Context(), "slug"))
	game, err := getGame(db, slug)
	if err != nil {
		renderJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such game"})
		return
	}

	state, err := replayTurns(game, -1)
	if err != nil {
		log.Errorw("could not replay game", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not replay game state"})
		return
	}

	engine := ai.NewRandom(rand.Int63())
	turn, err := engine.ChooseTurn(r.Context(), state)
	if err != nil {
		renderJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	tp := payloadFromTurn(turn)
	if !state.ApplyTurn(turn) {
		log.Errorw("engine chose an illegal turn", "slug", slug, "turn", turn.String())
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	if err := insertTurn(db, game, tp, state.CurrentPlayer()); err != nil {
		log.Errorw("could not insert turn", "slug", slug, zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not save turn"})
		return
	}

	turnsApplied.Inc()
	renderJSON(w, http.StatusOK, stateResponse(game, state, len(game.Turns)+1))
}

// payloadFromTurn converts an engine turn back into wire form for storage.
func payloadFromTurn(turn takgo.Turn) *TurnPayload {
	switch t := turn.(type) {
	case takgo.Place:
		return &TurnPayload{
			Kind:   "place",
			Player: playerWire(t.By),
			Row:    t.Loc.Row,
			Col:    t.Loc.Col,
			Stone:  stoneWire(t.Stone),
		}
	case takgo.Move:
		return &TurnPayload{
			Kind:   "move",
			Player: playerWire(t.By),
			Row:    t.Loc.Row,
			Col:    t.Loc.Col,
			Dir:    t.Dir.String(),
			Total:  t.Total,
			Drops:  t.Drops,
		}
	default:
		panic(fmt.Sprintf("unknown turn type %T", turn))
	}
}

// @Summary Health check
// @Description Returns service health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, HealthResponse{
		Healthy:  "true",
		Revision: os.Getenv("GIT_REVISION"),
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusNotFound, ErrorResponse{
		Error: "404: This page could not be found",
	})
}
