package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cellsort/pkg/errors"
	"github.com/matzehuels/cellsort/pkg/tissue"
	"github.com/matzehuels/cellsort/pkg/tissue/point"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string
}

// serveCommand creates the serve command, exposing sorting over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultServeAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose sorting over HTTP",
		Long: `Serve starts an HTTP server with a JSON sorting endpoint.

POST /api/v1/sort accepts {"values": [...]} or
{"points": [[x, y], ...], "comparator": "sum"} plus optional
"max_rounds" and "stubborn" fields, and responds with the sorted order
and convergence stats.`,
		Example: `  cellsort serve
  cellsort serve --addr :9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.newRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve on %s", opts.addr)
		}
		return nil
	}
}

// newRouter builds the HTTP routes.
func (c *CLI) newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sort", c.handleSort)
	})

	return r
}

// sortRequest is the JSON body of POST /api/v1/sort.
type sortRequest struct {
	Values     []float64   `json:"values,omitempty"`
	Points     [][]float64 `json:"points,omitempty"`
	Comparator string      `json:"comparator,omitempty"`
	MaxRounds  int         `json:"max_rounds,omitempty"`
	Stubborn   []int       `json:"stubborn,omitempty"`
}

// sortResponse is the JSON reply of POST /api/v1/sort.
type sortResponse struct {
	Sorted    []string `json:"sorted"`
	Rounds    int      `json:"rounds"`
	Swaps     int      `json:"swaps"`
	Converged bool     `json:"converged"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *CLI) handleSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	resp, err := sortForRequest(&req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.GetCode(err) == errors.ErrCodeInternal {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err)
		return
	}

	c.Logger.Debugf("Sorted %d elements: %d rounds, %d swaps", len(resp.Sorted), resp.Rounds, resp.Swaps)
	writeJSON(w, http.StatusOK, resp)
}

// sortForRequest validates the request and runs the sort.
func sortForRequest(req *sortRequest) (*sortResponse, error) {
	if len(req.Values) > 0 && len(req.Points) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request cannot mix values and points")
	}
	if req.MaxRounds < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max_rounds must not be negative")
	}

	if len(req.Points) > 0 {
		pts := make([]point.Point, len(req.Points))
		for i, p := range req.Points {
			if len(p) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"points[%d] has %d coordinates, want 2", i, len(p))
			}
			pts[i] = point.Point{X: p[0], Y: p[1]}
		}

		method := req.Comparator
		if method == "" {
			method = point.MethodDistance
		}
		cmp, err := point.ByName(method)
		if err != nil {
			return nil, err
		}
		return sortElements(pts, cmp, req)
	}

	if req.Comparator != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "comparator %q requires points input", req.Comparator)
	}
	if len(req.Values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request has no values or points")
	}
	return sortElements(req.Values, tissue.Natural[float64](), req)
}

func sortElements[T any](values []T, cmp tissue.Comparator[T], req *sortRequest) (*sortResponse, error) {
	if err := checkIndices(req.Stubborn, len(values)); err != nil {
		return nil, err
	}

	ts := tissue.New(values, cmp)
	for _, i := range req.Stubborn {
		ts.CellAt(i).SetStubborn(true)
	}

	res := ts.Sort(tissue.SortOptions{MaxRounds: req.MaxRounds})
	return &sortResponse{
		Sorted:    formatValues(ts.Values()),
		Rounds:    res.Rounds,
		Swaps:     res.Swaps,
		Converged: res.Converged,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
