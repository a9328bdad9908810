// Package pipeline orchestrates one generation request end to end:
// fuse signals, generate with continuation, resolve assets, validate.
package pipeline

import (
	"context"
	"log"

	"foliogen/internal/analysis"
	"foliogen/internal/assets"
	"foliogen/internal/config"
	"foliogen/internal/generation"
	"foliogen/internal/quality"
	"foliogen/internal/types"
)

// ProgressFunc observes stage transitions. Nil is allowed.
type ProgressFunc func(stage, detail string)

// Stage names emitted over the progress callback.
const (
	StageAnalyzing  = "analyzing"
	StageGenerating = "generating"
	StageContinuing = "continuing"
	StageResolving  = "resolving"
	StageValidating = "validating"
	StageDone       = "done"
)

// Result is the structured outcome of a run. The pipeline never raises:
// terminally incomplete sessions surface here with Incomplete set.
type Result struct {
	Incomplete  bool                  `json:"incomplete,omitempty"`
	FinalHTML   string                `json:"final_html,omitempty"`
	PartialHTML string                `json:"partial_html,omitempty"`
	Brief       *analysis.DesignBrief `json:"brief"`
	Session     generation.Summary    `json:"session"`
	Assets      assets.Report         `json:"assets"`
	Validation  *quality.Report       `json:"validation,omitempty"`
	Diagnostics []string              `json:"diagnostics,omitempty"`
}

// Pipeline wires the stages together. Stateless across requests apart from
// read-only configuration and the shared clients.
type Pipeline struct {
	Fusion  *analysis.Engine
	Invoker *generation.Invoker
	Store   *assets.Store // nil when asset storage is not configured
	Quality *quality.Runner
	Cfg     *config.Config
}

// Run executes the full pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, user *types.UserData, progress ProgressFunc) (*Result, error) {
	emit := func(stage, detail string) {
		if progress != nil {
			progress(stage, detail)
		}
	}

	if p.Store != nil {
		hydrated, err := p.Store.HydrateProjects(ctx, user.Projects)
		if err != nil {
			// Storage trouble degrades to caller-supplied URLs.
			log.Printf("pipeline: asset hydration degraded: %v", err)
		} else {
			user.Projects = hydrated
		}
	}

	emit(StageAnalyzing, "")
	brief := p.Fusion.Fuse(ctx, user)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit(StageGenerating, "")
	ctrl := &generation.Controller{
		Invoker:       p.Invoker,
		MaxAttempts:   p.Cfg.Generation.MaxAttempts,
		UpstreamDelay: p.Cfg.Generation.UpstreamDelay,
		MinHTMLBytes:  p.Cfg.Generation.MinHTMLBytes,
		OnAttempt: func(att generation.Attempt) {
			if !att.IsComplete && att.CanContinue {
				emit(StageContinuing, "")
			}
		},
	}
	session := ctrl.Run(ctx, brief, user)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolver := assets.NewResolver(assets.BuildCatalog(user.Projects))

	if !session.Complete() {
		res := &Result{
			Incomplete: true,
			Brief:      brief,
			Session:    session.Summary(),
			Diagnostics: append([]string{
				"generation ended: " + string(session.TerminalReason),
			}, session.Summary().Issues...),
		}
		if session.FinalText != "" {
			partial, areport := resolver.Resolve(session.FinalText)
			res.PartialHTML = partial
			res.Assets = areport
		}
		emit(StageDone, string(session.TerminalReason))
		return res, nil
	}

	emit(StageResolving, "")
	resolved, areport := resolver.Resolve(session.FinalText)

	emit(StageValidating, "")
	report := p.Quality.Run(ctx, resolved, user, brief)

	if report.Overall.Score < p.Cfg.Quality.AutoFixThreshold {
		fixed, applied := quality.AutoFix(resolved, user.Personal.Name)
		if applied {
			// The fix pass may disturb asset rewrites; resolving again
			// restores them, and idempotence keeps intact URLs untouched.
			var fixReport assets.Report
			resolved, fixReport = resolver.Resolve(fixed)
			areport.Fallbacks += fixReport.Fallbacks
			areport.Repairs += fixReport.Repairs
			report = p.Quality.Run(ctx, resolved, user, brief)
			report.AutoFixApplied = true
		}
	}

	emit(StageDone, "")
	return &Result{
		FinalHTML:  resolved,
		Brief:      brief,
		Session:    session.Summary(),
		Assets:     areport,
		Validation: &report,
	}, nil
}
