package world

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-organism/model"
)

const challengeKey = "challengeId"

// Verdicts recorded for a submission
const (
	VerdictOK       = "ok"
	VerdictMismatch = "mismatch"
)

// Result is what the service records for a submission
type Result struct {
	ID          string `json:"id"`
	ChallengeID string `json:"challengeId"`
	Verdict     string `json:"verdict"`
	Reason      string `json:"reason,omitempty"`
	Generations int    `json:"generations"`
}

// WorldSource produces a new starting world for each challenge
type WorldSource func() *model.Grid

// FixedWorld always hands out the same grid
func FixedWorld(g *model.Grid) WorldSource {
	return func() *model.Grid { return g }
}

// DeadWorld hands out an all-dead size x size grid
func DeadWorld(size int) (WorldSource, error) {
	g, err := model.NewDeadGrid(size, size)
	if err != nil {
		return nil, errors.Wrap(err, "[DeadWorld]")
	}
	return FixedWorld(g), nil
}

// RandomWorld hands out size x size grids with roughly density live cells
func RandomWorld(size int, density float64, seed int64) WorldSource {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	return func() *model.Grid {
		mu.Lock()
		defer mu.Unlock()
		rows := make([][]model.CellState, size)
		for y := range rows {
			rows[y] = make([]model.CellState, size)
			for x := range rows[y] {
				if rng.Float64() < density {
					rows[y][x] = model.Alive
				}
			}
		}
		return model.MustGrid(rows)
	}
}

// Server is a reference world service: it issues worlds, checks submitted
// generations against its own stepper, and redirects to a result page.
type Server struct {
	mu              sync.Mutex
	source          WorldSource
	generationCount int
	stepper         *model.Stepper
	logger          *slog.Logger
	challenges      map[string]*model.Grid
	results         map[string]Result
	nextID          int
}

// NewServer creates a server issuing worlds from source, each to be run for
// generationCount generations. generationCount includes generation 0, so it must be at least 1.
func NewServer(source WorldSource, generationCount int, stepper *model.Stepper, logger *slog.Logger) (*Server, error) {
	if generationCount < 1 {
		return nil, errors.Wrapf(model.ErrSequenceLength, "[NewServer] generationCount %d", generationCount)
	}
	return &Server{
		source:          source,
		generationCount: generationCount,
		stepper:         stepper,
		logger:          logger,
		challenges:      make(map[string]*model.Grid),
		results:         make(map[string]Result),
	}, nil
}

// Router returns the chi router serving the world endpoints
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/world", s.getWorld)
	r.Post("/generations", s.postGenerations)
	r.Get("/results/{id}", s.getResult)
	return r
}

func (s *Server) getWorld(w http.ResponseWriter, r *http.Request) {
	grid := s.source()

	s.mu.Lock()
	s.nextID++
	id := "c" + strconv.Itoa(s.nextID)
	s.challenges[id] = grid
	s.mu.Unlock()

	payload := &Payload{
		World:           grid,
		Size:            grid.GetHeight(),
		GenerationCount: s.generationCount,
		Meta:            map[string]any{challengeKey: id},
	}
	s.logger.Info("issued world", "challenge", id, "size", payload.Size)
	writeJSON(w, http.StatusOK, payload, s.logger)
}

func (s *Server) postGenerations(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("postGenerations: invalid request body", "error", err)
		return
	}
	challengeID, _ := sub.Meta[challengeKey].(string)

	s.mu.Lock()
	world, ok := s.challenges[challengeID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown challenge %q", challengeID), http.StatusNotFound)
		return
	}

	result := Result{ChallengeID: challengeID, Generations: sub.Generations.Len(), Verdict: VerdictOK}
	if err := s.check(world, sub.Generations); err != nil {
		result.Verdict = VerdictMismatch
		result.Reason = err.Error()
	}

	s.mu.Lock()
	s.nextID++
	result.ID = "r" + strconv.Itoa(s.nextID)
	s.results[result.ID] = result
	s.mu.Unlock()

	s.logger.Info("graded submission", "challenge", challengeID, "verdict", result.Verdict)
	http.Redirect(w, r, "/results/"+result.ID, http.StatusSeeOther)
}

func (s *Server) check(world *model.Grid, got model.Sequence) error {
	if err := got.ExpectLen(s.generationCount); err != nil {
		return err
	}
	if len(got) == 0 {
		return errors.New("no generations submitted")
	}
	if !got[0].Equal(world) {
		return errors.New("generation 0 is not the issued world")
	}
	want, err := s.stepper.Generate(world, s.generationCount-1)
	if err != nil {
		return err
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			return errors.Errorf("generation %d differs", i)
		}
	}
	return nil
}

func (s *Server) getResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	result, ok := s.results[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "Result not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
