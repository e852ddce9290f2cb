package content

import (
	"context"
	"fmt"

	"listinglab/internal/providers/caption"
	"listinglab/internal/render"

	"github.com/rs/zerolog"
)

// Flow declares everything one generation handler needs the engine to do.
// The four HTTP flows differ only in these fields; the sequencing, failure
// semantics and best-effort policy live in Generator.Run.
type Flow struct {
	Kind Kind

	// Submit creates the provider job. Exactly one call.
	Submit func(ctx context.Context) (render.Job, error)
	// Fetch queries provider status for the submitted job.
	Fetch func(ctx context.Context, jobID string) (render.Status, any, error)
	// Extract normalizes the terminal payload.
	Extract func(payload any) (render.Result, error)

	// Caption is the enrichment request. Its SourceText doubles as the
	// fallback caption.
	Caption caption.Request

	// Writes builds the persistence write set from the finished result.
	Writes func(job render.Job, res render.Result, captionText string) []Write
}

// Output is what a completed flow hands back to its handler.
type Output struct {
	Job     render.Job
	Result  render.Result
	Caption string
	Persist Outcome
}

// Generator is the consolidated engine behind every generation flow.
type Generator struct {
	Poller    render.Poller
	Captions  caption.Generator
	Persister *Persister
	Logger    zerolog.Logger
}

// Run executes a flow: submit, poll to terminal, extract, enrich, persist.
// Steps are strictly sequential; the only suspension is the poller's wait
// between attempts.
func (g *Generator) Run(ctx context.Context, flow Flow) (*Output, error) {
	job, err := flow.Submit(ctx)
	if err != nil {
		return nil, fmt.Errorf("submit %s job: %w", flow.Kind, err)
	}

	var payload any
	if job.Status == render.StatusCompleted {
		// The submission response was already terminal; a single status
		// fetch retrieves the assets without entering the polling loop.
		status, p, err := flow.Fetch(ctx, job.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch completed %s job: %w", flow.Kind, err)
		}
		if status != render.StatusCompleted {
			return nil, fmt.Errorf("job %s regressed from completed to %s", job.ID, status)
		}
		payload = p
	} else {
		payload, err = g.Poller.PollUntilTerminal(ctx, job.ID, func(ctx context.Context) (render.Status, any, error) {
			return flow.Fetch(ctx, job.ID)
		})
		if err != nil {
			return nil, err
		}
	}
	job.Status = render.StatusCompleted

	result, err := flow.Extract(payload)
	if err != nil {
		return nil, fmt.Errorf("extract %s result: %w", flow.Kind, err)
	}

	captionText := g.enrich(ctx, flow.Caption)

	var outcome Outcome
	if flow.Writes != nil {
		outcome, err = g.Persister.Persist(ctx, flow.Writes(job, result, captionText))
		if err != nil {
			return nil, err
		}
	}

	return &Output{Job: job, Result: result, Caption: captionText, Persist: outcome}, nil
}

// enrich asks the caption generator for text and degrades to the fallback on
// any failure. A caption outage must never prevent the render result from
// reaching the user, so no error escapes this method.
func (g *Generator) enrich(ctx context.Context, req caption.Request) string {
	fallback := caption.Fallback(req)
	if g.Captions == nil {
		return fallback
	}
	text, err := g.Captions.Caption(ctx, req)
	if err != nil {
		g.Logger.Warn().
			Str("category", "enrichment").
			Str("kind", req.Kind).
			Err(err).
			Msg("caption generation failed, using fallback")
		return fallback
	}
	if text == "" {
		return fallback
	}
	return text
}
