package cli

import (
	"encoding/json"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/polycover/polycover/pkg/cache"
	"github.com/polycover/polycover/pkg/cover"
	apperrors "github.com/polycover/polycover/pkg/errors"
	"github.com/polycover/polycover/pkg/instance"
	"github.com/polycover/polycover/pkg/report"
	"github.com/polycover/polycover/pkg/runner"
	"github.com/polycover/polycover/pkg/wkt"
)

// coverRequest is the JSON body of POST /cover.
type coverRequest struct {
	WKT            string   `json:"wkt"`
	CreationCost   int64    `json:"creation_cost"`
	AreaCost       int64    `json:"area_cost"`
	Algorithm      string   `json:"algorithm"`
	Postprocessors []string `json:"postprocessors"`
	Verify         *bool    `json:"verify,omitempty"`
	TimeoutSeconds float64  `json:"timeout_seconds,omitempty"`
	Name           string   `json:"name,omitempty"`
}

// errorResponse is the JSON body of failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newServeCmd() *cobra.Command {
	var (
		addr      string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the covering engine over HTTP",
		Long: `Serve starts an HTTP server with a single solving endpoint:

	POST /cover    body: {"wkt": ..., "creation_cost": ..., "area_cost": ...,
	                      "algorithm": ..., "postprocessors": [...]}
	GET  /healthz  liveness probe

Results are cached by a hash of the WKT, the costs and the chain, and
only when --redis is configured; the redis cache is shared between
server processes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.ListenAddr != "" {
				addr = cfg.ListenAddr
			}
			if !cmd.Flags().Changed("redis") && cfg.RedisAddr != "" {
				redisAddr = cfg.RedisAddr
			}
			logger := loggerFromContext(cmd.Context())

			var store cache.Cache = cache.NewNullCache()
			if redisAddr != "" {
				redisCache, err := cache.NewRedisCache(cmd.Context(), redisAddr, "", 0)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInternal, err, "connect redis at %s", redisAddr)
				}
				defer redisCache.Close()
				store = redisCache
				logger.Info("Using redis result cache", "addr", redisAddr)
			}

			router := chi.NewRouter()
			router.Use(middleware.RequestID)
			router.Use(middleware.Recoverer)
			router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
			})
			router.Post("/cover", handleCover(logger, store))

			logger.Info("Listening", "addr", addr)
			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-cmd.Context().Done()
				_ = server.Close()
			}()
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for the shared result cache")
	return cmd
}

func handleCover(logger *charmlog.Logger, store cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req coverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "malformed JSON body")
			return
		}
		if req.Algorithm == "" {
			req.Algorithm = "greedy"
		}
		name := req.Name
		if name == "" {
			name = "request"
		}

		timeout := time.Duration(req.TimeoutSeconds * float64(time.Second))
		provider, chainName, err := buildProvider(req.Algorithm, req.Postprocessors, timeout, logger)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.GetCode(err), apperrors.UserMessage(err))
			return
		}

		key := cache.Key(req.WKT, req.CreationCost, req.AreaCost, chainName)
		if data, ok, err := store.Get(r.Context(), key); err == nil && ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			_, _ = w.Write(data)
			return
		}

		mp, err := wkt.Parse(req.WKT)
		if err != nil {
			writeError(w, http.StatusBadRequest, apperrors.GetCode(err), apperrors.UserMessage(err))
			return
		}
		inst := instance.New(name, mp, parseRequestCosts(req))

		verify := true
		if req.Verify != nil {
			verify = *req.Verify
		}
		start := time.Now()
		results, err := runner.New(logger, verify).Run(provider, inst)
		end := time.Now()
		if err != nil {
			status := http.StatusInternalServerError
			if apperrors.Is(err, apperrors.ErrCodeInvalidGeometry) || apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, apperrors.GetCode(err), apperrors.UserMessage(err))
			return
		}

		doc := report.Build(inst, results, chainName, start, end)
		data, err := json.Marshal(doc)
		if err != nil {
			writeError(w, http.StatusInternalServerError, apperrors.ErrCodeInternal, "encode result")
			return
		}
		if err := store.Set(r.Context(), key, data, 24*time.Hour); err != nil {
			logger.Debug("Result cache store failed", "err", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "miss")
		_, _ = w.Write(data)
	}
}

func parseRequestCosts(req coverRequest) cover.Costs {
	return cover.Costs{Creation: req.CreationCost, Area: req.AreaCost}
}

func writeError(w http.ResponseWriter, status int, code apperrors.Code, message string) {
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: string(code), Message: message})
}
