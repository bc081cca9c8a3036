package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scenario"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scorequery"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		datasetPath   string
		districtsPath string
		historyPath   string
		chamberName   string
		target        string
		port          string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local API server for the map dashboard",
		Long: `Starts an HTTP server on localhost that serves district, score,
target, shift, and scenario data from a local dataset. Point the web
dashboard at this server for development against real exports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(serveOpts{
				inputs: inputOpts{
					dataset:   datasetPath,
					districts: districtsPath,
					history:   historyPath,
					chamber:   chamberName,
				},
				target: target,
				port:   port,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset file (default: newest import)")
	cmd.Flags().StringVar(&districtsPath, "districts", "", "Path to a districts file (overrides --dataset)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Path to a history file (with --districts)")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&target, "target", "", "Target party: D or R (default: from config)")
	cmd.Flags().StringVar(&port, "port", "7700", "Port to serve on")

	return cmd
}

type serveOpts struct {
	inputs inputOpts
	target string
	port   string
}

func runServe(opts serveOpts) error {
	cfg := loadConfig()

	ds, err := loadInputs(cfg, opts.inputs)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, opts.target)
	if err != nil {
		return err
	}

	// Score once up front; the dataset is immutable for the server's life.
	results, err := engine.ScoreAll(ds.Districts, ds.History)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	srv := &localAPIServer{
		ds:       ds,
		engine:   engine,
		results:  results,
		baseline: chamber.BaselineControl(ds.Districts),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/meta", srv.handleMeta)
	mux.HandleFunc("GET /api/districts", srv.handleDistricts)
	mux.HandleFunc("GET /api/scores", srv.handleScores)
	mux.HandleFunc("GET /api/scores/{district}", srv.handleScoreDetail)
	mux.HandleFunc("GET /api/targets", srv.handleTargets)
	mux.HandleFunc("GET /api/shift", srv.handleShift)
	mux.HandleFunc("GET /api/scenario", srv.handleScenario)

	// CORS middleware for the dashboard dev server
	handler := corsMiddleware(mux)

	fmt.Fprintf(os.Stderr, "Scmap local API server\n")
	fmt.Fprintf(os.Stderr, "  Chamber:    %s (%s)\n", ds.Chamber, ds.Cycle)
	fmt.Fprintf(os.Stderr, "  Districts:  %d\n", len(ds.Districts))
	fmt.Fprintf(os.Stderr, "  Target:     %s\n", string(engine.Target()))
	fmt.Fprintf(os.Stderr, "  Listening:  http://localhost:%s\n", opts.port)
	fmt.Fprintf(os.Stderr, "\nStart the dashboard with NEXT_PUBLIC_API_MODE=local to use this server.\n")

	return http.ListenAndServe(":"+opts.port, handler)
}

type localAPIServer struct {
	ds       *chamber.Dataset
	engine   *scoring.Engine
	results  []scoring.ScoreResult
	baseline map[int]chamber.Party
}

func (s *localAPIServer) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"chamber":      s.ds.Chamber,
		"cycle":        s.ds.Cycle,
		"target_party": s.engine.Target(),
		"dataset_id":   s.ds.ID,
		"retrieved_at": s.ds.RetrievedAt,
		"stats":        s.ds.Stats,
	})
}

func (s *localAPIServer) handleDistricts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Districts)
}

func (s *localAPIServer) handleScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var f scorequery.Filter
	for _, t := range q["tier"] {
		f.Tiers = append(f.Tiers, scoring.Tier(t))
	}
	f.NeedsCandidateOnly = q.Get("needs_candidate") == "true"
	f.OpenSeatsOnly = q.Get("open_seats") == "true"
	if v := q.Get("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid min_score", http.StatusBadRequest)
			return
		}
		f.MinScore = parsed
	}

	results := scorequery.Apply(s.results, f)
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		results = scorequery.TopN(results, n)
	}

	writeJSON(w, map[string]any{
		"results":   results,
		"breakdown": scorequery.TierBreakdown(results),
	})
}

func (s *localAPIServer) handleScoreDetail(w http.ResponseWriter, r *http.Request) {
	district, err := strconv.Atoi(r.PathValue("district"))
	if err != nil || district <= 0 {
		http.Error(w, "invalid district number", http.StatusBadRequest)
		return
	}

	for i := range s.results {
		if s.results[i].District == district {
			writeJSON(w, s.results[i])
			return
		}
	}
	http.NotFound(w, r)
}

func (s *localAPIServer) handleTargets(w http.ResponseWriter, r *http.Request) {
	var opts recruit.Options
	q := r.URL.Query()
	if v := q.Get("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid min_score", http.StatusBadRequest)
			return
		}
		opts.MinScore = parsed
	}
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		opts.Limit = parsed
	}

	targets, err := recruit.Rank(s.engine, s.ds.Districts, s.ds.History, opts)
	if err != nil {
		http.Error(w, "ranking failed", http.StatusInternalServerError)
		return
	}
	if targets == nil {
		targets = []recruit.Target{}
	}
	writeJSON(w, targets)
}

func (s *localAPIServer) handleShift(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := q.Get("current")
	previous := q.Get("previous")
	switch {
	case current == "" && previous == "":
		if len(s.ds.Stats.CyclesCovered) < 2 {
			http.Error(w, "dataset covers fewer than two cycles", http.StatusBadRequest)
			return
		}
		current = s.ds.Stats.CyclesCovered[0]
		previous = s.ds.Stats.CyclesCovered[1]
	case current == "" || previous == "":
		http.Error(w, "current and previous must be passed together", http.StatusBadRequest)
		return
	}

	writeJSON(w, chamber.CompareCycles(s.ds.History, current, previous))
}

func (s *localAPIServer) handleScenario(w http.ResponseWriter, r *http.Request) {
	sc := scenario.Parse(r.URL.Query().Get("state"), s.baseline)
	writeJSON(w, map[string]any{
		"state":           sc.Serialize(),
		"overrides":       sc.Overrides(),
		"baseline_counts": sc.BaselineCounts(),
		"seat_counts":     sc.SeatCounts(),
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
