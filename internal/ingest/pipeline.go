// Package ingest cleans, filters, analyzes and stores batches of lyrics.
package ingest

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/rimas-backend/internal/lyrics"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/store"
)

// Document is one lyric to ingest. HTML takes precedence over Text.
type Document struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Text   string `json:"text,omitempty"`
	HTML   string `json:"html,omitempty"`
}

type Status string

const (
	StatusStored   Status = "stored"
	StatusAnalyzed Status = "analyzed"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

type Outcome struct {
	Artist   string  `json:"artist"`
	Title    string  `json:"title"`
	Status   Status  `json:"status"`
	Reason   string  `json:"reason,omitempty"`
	Language string  `json:"language,omitempty"`
	Lines    int     `json:"lines"`
	Quality  float64 `json:"quality_score"`
}

// Report lists one Outcome per input document, in input order.
type Report struct {
	Total    int       `json:"total"`
	Stored   int       `json:"stored"`
	Analyzed int       `json:"analyzed"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
	Duration string    `json:"duration"`
	Items    []Outcome `json:"items"`
}

// Pipeline is safe for concurrent Run calls. A nil repo analyzes without
// storing; a nil gate accepts every language.
type Pipeline struct {
	repo        store.LyricRepo
	gate        *lyrics.LanguageGate
	log         *logger.Logger
	concurrency int
}

func NewPipeline(repo store.LyricRepo, gate *lyrics.LanguageGate, baseLog *logger.Logger, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = 4
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Pipeline{
		repo:        repo,
		gate:        gate,
		log:         baseLog.With("component", "IngestPipeline"),
		concurrency: concurrency,
	}
}

// Run processes docs with bounded parallelism. Per-document failures land in
// the report; only ctx cancellation stops the batch early.
func (p *Pipeline) Run(ctx context.Context, docs []Document) Report {
	start := time.Now()
	items := make([]Outcome, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range docs {
		i := i
		if gctx.Err() != nil {
			items[i] = failed(docs[i], gctx.Err())
			continue
		}
		g.Go(func() error {
			items[i] = p.process(gctx, docs[i])
			return nil
		})
	}
	_ = g.Wait()

	rep := Report{Total: len(docs), Items: items, Duration: time.Since(start).Round(time.Millisecond).String()}
	for _, it := range items {
		switch it.Status {
		case StatusStored:
			rep.Stored++
		case StatusAnalyzed:
			rep.Analyzed++
		case StatusSkipped:
			rep.Skipped++
		default:
			rep.Failed++
		}
	}
	p.log.Info("ingest batch finished",
		"total", rep.Total,
		"stored", rep.Stored,
		"analyzed", rep.Analyzed,
		"skipped", rep.Skipped,
		"failed", rep.Failed,
		"duration", rep.Duration,
	)
	return rep
}

func (p *Pipeline) process(ctx context.Context, doc Document) Outcome {
	out := Outcome{Artist: doc.Artist, Title: doc.Title}
	if err := ctx.Err(); err != nil {
		return failed(doc, err)
	}

	text, err := Text(doc)
	if err != nil {
		return failed(doc, err)
	}
	if strings.TrimSpace(text) == "" {
		out.Status, out.Reason = StatusSkipped, "empty lyric"
		return out
	}

	if p.gate != nil {
		ok, det := p.gate.Allow(text)
		out.Language = det.Language
		if !ok {
			out.Status, out.Reason = StatusSkipped, "language: "+det.Language
			p.log.Debug("skipping non-portuguese lyric", "artist", doc.Artist, "title", doc.Title, "language", det.Language)
			return out
		}
	}

	m := lyrics.Analyze(text)
	out.Lines, out.Quality = m.LineCount, m.QualityScore

	if p.repo == nil {
		out.Status = StatusAnalyzed
		return out
	}
	rec, err := store.NewRecord(doc.Artist, doc.Title, text, m, lyrics.EndWords(text))
	if err != nil {
		return failed(doc, err)
	}
	if _, err := p.repo.Save(ctx, rec); err != nil {
		p.log.Warn("failed to store lyric", "artist", doc.Artist, "title", doc.Title, "error", err)
		o := failed(doc, err)
		o.Lines, o.Quality, o.Language = out.Lines, out.Quality, out.Language
		return o
	}
	out.Status = StatusStored
	return out
}

// Text returns the cleaned lyric body of doc.
func Text(doc Document) (string, error) {
	if strings.TrimSpace(doc.HTML) != "" {
		return lyrics.FromHTML(doc.HTML)
	}
	if strings.TrimSpace(doc.Text) == "" {
		return "", nil
	}
	return lyrics.Clean(doc.Text), nil
}

func failed(doc Document, err error) Outcome {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	if errors.Is(err, context.Canceled) {
		reason = "cancelled"
	}
	return Outcome{Artist: doc.Artist, Title: doc.Title, Status: StatusFailed, Reason: reason}
}
