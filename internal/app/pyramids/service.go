package pyramids

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
	"github.com/preston-bernstein/pyramid-service/internal/metrics"
	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

// Seeds chosen on behalf of the caller fall in [1, MaxAutoSeed].
const MaxAutoSeed = 999_999

// unknownThemeLabel is the metric label for theme keys that do not resolve.
const unknownThemeLabel = "unknown"

// MissingLevelsMessage is returned when a resample source carries no level metadata.
const MissingLevelsMessage = "the template pyramid does not contain level metadata; provide --levels explicitly"

// Store caches generated pyramids by id.
type Store interface {
	PutPyramid(id string, p pyramid.Pyramid)
	GetPyramid(id string) (pyramid.Pyramid, bool)
	ListPyramids() []pyramid.Summary
}

// Library persists pyramids beyond the life of the process.
type Library interface {
	WritePyramid(id string, p pyramid.Pyramid) error
	LoadPyramid(id string) (pyramid.Pyramid, error)
	ListPyramids() ([]pyramid.Summary, error)
}

// ResampleOptions overrides values otherwise taken from the source pyramid's meta.
type ResampleOptions struct {
	Levels        []int
	Theme         string
	Seed          *int64
	DivisionNames []string
	Title         *string
	Description   *string
}

// Saved pairs a stored pyramid with its id.
type Saved struct {
	ID      string
	Pyramid pyramid.Pyramid
}

// Service coordinates generation, resampling and storage.
type Service struct {
	gen          *generator.Generator
	store        Store
	library      Library
	recorder     *metrics.Recorder
	logger       *slog.Logger
	defaultTheme string
	seedFn       func() int64
	idFn         func() string
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables the in-memory cache used by Create and Get.
func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

// WithLibrary enables persistence of created pyramids.
func WithLibrary(lib Library) Option {
	return func(s *Service) { s.library = lib }
}

func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithDefaultTheme sets the theme used when neither the caller nor the source names one.
func WithDefaultTheme(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.defaultTheme = key
		}
	}
}

// WithSeedSource replaces the random seed picker; tests use it to pin seeds.
func WithSeedSource(fn func() int64) Option {
	return func(s *Service) { s.seedFn = fn }
}

// WithIDSource replaces uuid generation for stored pyramids.
func WithIDSource(fn func() string) Option {
	return func(s *Service) { s.idFn = fn }
}

// NewService constructs a Service around a generator.
func NewService(gen *generator.Generator, opts ...Option) *Service {
	if gen == nil {
		gen = generator.New(nil)
	}
	s := &Service{
		gen:          gen,
		defaultTheme: themes.DefaultKey,
		seedFn:       RandomSeed,
		idFn:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomSeed picks a seed in [1, MaxAutoSeed].
func RandomSeed() int64 {
	return rand.Int64N(MaxAutoSeed) + 1
}

// Themes returns the registry backing the generator.
func (s *Service) Themes() *themes.Registry {
	return s.gen.Themes()
}

// DefaultTheme returns the configured default theme key.
func (s *Service) DefaultTheme() string {
	return s.defaultTheme
}

// Generate builds a pyramid, filling in the default theme and a random seed when absent.
func (s *Service) Generate(ctx context.Context, opts generator.Options) (pyramid.Pyramid, error) {
	if opts.Theme == "" {
		opts.Theme = s.defaultTheme
	}
	if opts.Seed == nil {
		seed := s.seedFn()
		opts.Seed = &seed
	}

	logger := logging.FromContext(ctx, s.logger)
	start := time.Now()
	p, report, err := s.gen.GenerateReport(opts)
	s.recorder.RecordGeneration(metrics.Generation{
		Theme:       s.themeLabel(opts.Theme),
		Teams:       report.Teams,
		SuffixDraws: report.SuffixDraws,
		Fallbacks:   report.Fallbacks,
		Duration:    time.Since(start),
		Err:         err,
	})
	if err != nil {
		logging.Warn(logger, "pyramid generation rejected",
			logging.FieldTheme, opts.Theme,
			logging.FieldLevels, opts.Levels,
			"error", err,
		)
		return pyramid.Pyramid{}, err
	}

	if report.Fallbacks > 0 {
		logging.Warn(logger, "team vocabulary exhausted; numbered names used",
			logging.FieldTheme, opts.Theme,
			logging.FieldFallbacks, report.Fallbacks,
		)
	}
	logging.Info(logger, "generated pyramid",
		logging.FieldTheme, opts.Theme,
		logging.FieldSeed, *opts.Seed,
		logging.FieldLevels, opts.Levels,
		logging.FieldTeams, report.Teams,
	)
	return p, nil
}

// themeLabel maps a caller-supplied key to its canonical form for metrics.
func (s *Service) themeLabel(key string) string {
	theme, err := s.gen.Themes().Get(key)
	if err != nil {
		return unknownThemeLabel
	}
	return theme.Key
}

// Resample regenerates a pyramid from the source's meta with the given overrides.
// sourceRef is recorded under resampled_from.
func (s *Service) Resample(ctx context.Context, source pyramid.Pyramid, sourceRef string, opts ResampleOptions) (pyramid.Pyramid, error) {
	genOpts, err := s.resampleOptions(source, sourceRef, opts)
	if err != nil {
		return pyramid.Pyramid{}, err
	}
	return s.Generate(ctx, genOpts)
}

func (s *Service) resampleOptions(source pyramid.Pyramid, sourceRef string, opts ResampleOptions) (generator.Options, error) {
	const op = "pyramids.resample"

	theme := opts.Theme
	if theme == "" {
		if fromMeta, ok := source.Meta.String(pyramid.MetaTheme); ok {
			theme = fromMeta
		} else {
			theme = s.defaultTheme
		}
	}

	levels := opts.Levels
	if len(levels) == 0 {
		fromMeta, ok, err := source.Meta.Ints(pyramid.MetaLevels)
		if err != nil {
			return generator.Options{}, &domain.Error{Op: op, Kind: domain.KindMalformedDocument, Msg: "invalid level metadata", Err: err}
		}
		if !ok || len(fromMeta) == 0 {
			return generator.Options{}, domain.Errorf(op, domain.KindInvalidInput, MissingLevelsMessage)
		}
		levels = fromMeta
	}

	names := opts.DivisionNames
	if len(names) == 0 {
		fromMeta, _, err := source.Meta.Strings(pyramid.MetaCustomDivisionNames)
		if err != nil {
			return generator.Options{}, &domain.Error{Op: op, Kind: domain.KindMalformedDocument, Msg: "invalid division name metadata", Err: err}
		}
		names = fromMeta
	}

	title := opts.Title
	if title == nil || *title == "" {
		title = pyramid.StringPtr(source.Title)
	}
	description := opts.Description
	if description == nil || *description == "" {
		description = pyramid.StringPtr(source.Description)
	}

	seed := opts.Seed
	if seed == nil {
		v := s.seedFn()
		seed = &v
	}

	return generator.Options{
		Levels:        levels,
		Theme:         theme,
		Seed:          seed,
		Title:         title,
		Description:   description,
		DivisionNames: names,
		ExtraMeta:     map[string]any{pyramid.MetaResampledFrom: sourceRef},
	}, nil
}

// Create generates a pyramid and stores it under a new id.
func (s *Service) Create(ctx context.Context, opts generator.Options) (Saved, error) {
	p, err := s.Generate(ctx, opts)
	if err != nil {
		return Saved{}, err
	}
	return s.save(ctx, p)
}

// ResampleStored resamples a stored pyramid and stores the result under a new id.
func (s *Service) ResampleStored(ctx context.Context, id string, opts ResampleOptions) (Saved, error) {
	source, err := s.Get(ctx, id)
	if err != nil {
		return Saved{}, err
	}
	p, err := s.Resample(ctx, source, id, opts)
	if err != nil {
		return Saved{}, err
	}
	return s.save(ctx, p)
}

// Get returns a stored pyramid, checking the memory cache before the library.
func (s *Service) Get(ctx context.Context, id string) (pyramid.Pyramid, error) {
	if s.store != nil {
		if p, ok := s.store.GetPyramid(id); ok {
			return p, nil
		}
	}
	if s.library != nil {
		p, err := s.library.LoadPyramid(id)
		if err == nil {
			if s.store != nil {
				s.store.PutPyramid(id, p)
			}
			return p, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logging.Error(logging.FromContext(ctx, s.logger), "failed to load pyramid", err, logging.FieldPyramidID, id)
			return pyramid.Pyramid{}, err
		}
	}
	return pyramid.Pyramid{}, domain.Errorf("pyramids.get", domain.KindNotFound, "pyramid %q not found", id)
}

// List returns stored pyramid summaries, preferring the persistent library.
func (s *Service) List(ctx context.Context) ([]pyramid.Summary, error) {
	if s.library != nil {
		items, err := s.library.ListPyramids()
		if err != nil {
			logging.Error(logging.FromContext(ctx, s.logger), "failed to list pyramids", err)
			return nil, err
		}
		return items, nil
	}
	if s.store != nil {
		return s.store.ListPyramids(), nil
	}
	return []pyramid.Summary{}, nil
}

func (s *Service) save(ctx context.Context, p pyramid.Pyramid) (Saved, error) {
	id := s.idFn()
	if s.library != nil {
		if err := s.library.WritePyramid(id, p); err != nil {
			logging.Error(logging.FromContext(ctx, s.logger), "failed to persist pyramid", err, logging.FieldPyramidID, id)
			return Saved{}, err
		}
	}
	if s.store != nil {
		s.store.PutPyramid(id, p)
	}
	logging.Info(logging.FromContext(ctx, s.logger), "stored pyramid", logging.FieldPyramidID, id)
	return Saved{ID: id, Pyramid: p}, nil
}
