package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-organism/model"
	"github.com/sheikhrachel/go-organism/utils"
	"github.com/sheikhrachel/go-organism/verify"
	"github.com/sheikhrachel/go-organism/world"
)

// ErrNotVerified is returned when a submission is attempted without passing fixtures.
var ErrNotVerified = errors.New("fixtures have not passed")

// Fetcher retrieves a starting world
type Fetcher interface {
	FetchWorld(ctx context.Context) (*world.Payload, error)
}

// Submitter posts generations and returns the result URL
type Submitter interface {
	Submit(ctx context.Context, sub *world.Submission) (string, error)
}

// Generator builds generation sequences; *cache.Memo satisfies it
type Generator interface {
	Generate(ctx context.Context, initial *model.Grid, count int) (model.Sequence, error)
}

// StepperGenerator adapts a *model.Stepper to Generator
type StepperGenerator struct {
	Stepper *model.Stepper
}

// Generate ignores ctx; stepping small grids does not block
func (s StepperGenerator) Generate(_ context.Context, initial *model.Grid, count int) (model.Sequence, error) {
	return s.Stepper.Generate(initial, count)
}

// Deps are the collaborators a pipeline is built from. Opener and Metrics may be nil.
type Deps struct {
	Fixtures  []verify.Case
	Verifier  *verify.Verifier
	Fetcher   Fetcher
	Submitter Submitter
	Generator Generator
	Opener    world.Opener
	Metrics   *Metrics
	Logger    *slog.Logger
}

// Outcome is everything a full run produced
type Outcome struct {
	Report    *verify.Report
	Payload   *world.Payload
	Sequence  model.Sequence
	Stats     *utils.Stats
	ResultURL string
}

// Pipeline runs verify, fetch, transform, submit and open as explicit stages
type Pipeline struct {
	deps Deps
}

// New creates a pipeline
func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// Verify runs every fixture case in order, stopping at the first failure
func (p *Pipeline) Verify(ctx context.Context) (report *verify.Report, err error) {
	defer func(start time.Time) { p.deps.Metrics.observeStage("verify", start, err) }(time.Now())

	report, err = p.deps.Verifier.Run(p.deps.Fixtures)
	for _, res := range report.Results {
		p.deps.Metrics.countCase(res.Passed())
	}
	if err != nil {
		return report, errors.Wrap(err, "[Pipeline.Verify]")
	}
	return report, nil
}

// Fetch retrieves the world to transform
func (p *Pipeline) Fetch(ctx context.Context) (payload *world.Payload, err error) {
	defer func(start time.Time) { p.deps.Metrics.observeStage("fetch", start, err) }(time.Now())

	payload, err = p.deps.Fetcher.FetchWorld(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Pipeline.Fetch]")
	}
	return payload, nil
}

// Transform produces exactly payload.GenerationCount generations, the first being the world itself
func (p *Pipeline) Transform(ctx context.Context, payload *world.Payload) (seq model.Sequence, err error) {
	defer func(start time.Time) { p.deps.Metrics.observeStage("transform", start, err) }(time.Now())

	if payload.GenerationCount < 1 {
		return nil, errors.Wrapf(model.ErrSequenceLength, "[Pipeline.Transform] generationCount %d", payload.GenerationCount)
	}

	seq, err = p.deps.Generator.Generate(ctx, payload.World, payload.GenerationCount-1)
	if err != nil {
		return nil, errors.Wrap(err, "[Pipeline.Transform]")
	}
	if err = seq.ExpectLen(payload.GenerationCount); err != nil {
		return nil, errors.Wrap(err, "[Pipeline.Transform]")
	}
	p.deps.Metrics.addGenerations(seq.Len())
	return seq, nil
}

// Submit posts the generations. report must come from a passing Verify.
func (p *Pipeline) Submit(ctx context.Context, report *verify.Report, payload *world.Payload, seq model.Sequence) (url string, err error) {
	defer func(start time.Time) { p.deps.Metrics.observeStage("submit", start, err) }(time.Now())

	if report == nil || !report.Passed() {
		return "", errors.Wrap(ErrNotVerified, "[Pipeline.Submit]")
	}
	url, err = p.deps.Submitter.Submit(ctx, world.NewSubmission(payload, seq))
	if err != nil {
		return "", errors.Wrap(err, "[Pipeline.Submit]")
	}
	return url, nil
}

// Open shows the result URL; failures are logged, not returned
func (p *Pipeline) Open(ctx context.Context, url string) {
	if p.deps.Opener == nil || url == "" {
		return
	}
	if err := p.deps.Opener.Open(ctx, url); err != nil {
		p.deps.Logger.Warn("failed to open result", "url", url, "error", err)
	}
}

// Run composes the stages. Nothing is fetched or submitted unless every fixture passes.
func (p *Pipeline) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{}

	p.deps.Logger.Info("running diagnostics", "stage", "verify", "cases", len(p.deps.Fixtures))
	report, err := p.Verify(ctx)
	out.Report = report
	if err != nil {
		return out, err
	}

	p.deps.Logger.Info("diagnostics passed, requesting world", "stage", "fetch")
	payload, err := p.Fetch(ctx)
	if err != nil {
		return out, err
	}
	out.Payload = payload

	start := time.Now()
	seq, err := p.Transform(ctx, payload)
	if err != nil {
		return out, err
	}
	out.Sequence = seq
	out.Stats = utils.NewStats(seq, time.Since(start))
	p.deps.Logger.Info("generated sequence",
		"stage", "transform",
		"generations", seq.Len(),
		"peak_population", out.Stats.PeakPopulation,
		"extinct_at", out.Stats.ExtinctAt,
	)

	url, err := p.Submit(ctx, report, payload, seq)
	if err != nil {
		return out, err
	}
	out.ResultURL = url
	p.deps.Logger.Info("submission accepted", "stage", "submit", "url", url)

	p.Open(ctx, url)
	return out, nil
}
