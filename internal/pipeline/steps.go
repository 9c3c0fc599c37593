package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/eolallowlist/internal/endoflife"
	"github.com/nao1215/eolallowlist/internal/model"
)

// LinkCollector collects product links from the API.
// *endoflife.Client implements it.
type LinkCollector interface {
	CollectLinks(ctx context.Context) endoflife.Result
}

// Builder turns raw links into an allowlist.
// *classify.Classifier implements it.
type Builder interface {
	Build(links []string) (*model.Allowlist, int)
}

// AllowlistWriter persists an allowlist.
// *allowlist.Writer implements it.
type AllowlistWriter interface {
	Write(list *model.Allowlist) ([]model.WrittenFile, error)
}

// FetchStep collects every product link into run.Links.
type FetchStep struct {
	collector LinkCollector
}

// NewFetchStep creates a fetch step.
func NewFetchStep(collector LinkCollector) *FetchStep {
	return &FetchStep{collector: collector}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do runs the fetch loop. It fails when no link could be collected,
// including when the product list itself could not be fetched.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	res := s.collector.CollectLinks(ctx)

	run.Products = res.Products
	for _, skipped := range res.Skipped {
		run.AddSkipped(skipped.Product, skipped.StatusCode)
	}
	if res.Links != nil {
		run.Links = res.Links
	}

	if !res.OK() {
		return res.Err
	}
	return nil
}

// ClassifyStep classifies run.Links into run.Allowlist.
type ClassifyStep struct {
	builder Builder
	logger  *slog.Logger
}

// ClassifyStepOption configures a ClassifyStep.
type ClassifyStepOption func(*ClassifyStep)

// WithClassifyLogger sets the logger of the classify step.
func WithClassifyLogger(logger *slog.Logger) ClassifyStepOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a classify step.
func NewClassifyStep(builder Builder, opts ...ClassifyStepOption) *ClassifyStep {
	s := &ClassifyStep{
		builder: builder,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do classifies the collected links. Discarded links are counted, never
// reported as errors.
func (s *ClassifyStep) Do(_ context.Context, run *model.Run) error {
	list, discarded := s.builder.Build(run.Links.Sorted())
	run.Allowlist = list
	run.Discarded = discarded

	s.logger.Info("links classified",
		"links", run.Links.Len(),
		"urls", list.URLs.Len(),
		"ips", list.IPs.Len(),
		"fqdns", list.FQDNs.Len(),
		"discarded", discarded,
	)
	return nil
}

// WriteStep writes run.Allowlist to disk.
type WriteStep struct {
	writer AllowlistWriter
}

// NewWriteStep creates a write step.
func NewWriteStep(writer AllowlistWriter) *WriteStep {
	return &WriteStep{writer: writer}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return "write"
}

// Do writes the allowlist files and records them on the run.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	files, err := s.writer.Write(run.Allowlist)
	run.Files = append(run.Files, files...)
	return err
}

// Default builds the fetch, classify and write pipeline.
func Default(collector LinkCollector, builder Builder, writer AllowlistWriter, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(
		NewFetchStep(collector),
		NewClassifyStep(builder, WithClassifyLogger(p.logger)),
		NewWriteStep(writer),
	)
	return p
}
