package library

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/daipendency/daipendency/pkg/errors"
	"github.com/daipendency/daipendency/pkg/extractor"
	"github.com/daipendency/daipendency/pkg/lang"
	"github.com/daipendency/daipendency/pkg/languages"
	"github.com/daipendency/daipendency/pkg/observability"
)

// Loader loads libraries through a language registry.
type Loader struct {
	registry *languages.Registry
	logger   *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for debug output. Defaults to a discarding
// logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader over reg, or over [languages.Default] when reg
// is nil.
func NewLoader(reg *languages.Registry, opts ...Option) *Loader {
	if reg == nil {
		reg = languages.Default()
	}
	l := &Loader{
		registry: reg,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type probeOutcome int

const (
	probeMatched probeOutcome = iota
	probeSkipped
	probeFatal
)

func (o probeOutcome) String() string {
	switch o {
	case probeMatched:
		return "matched"
	case probeSkipped:
		return "skipped"
	default:
		return "fatal"
	}
}

func classify(err error) probeOutcome {
	switch {
	case err == nil:
		return probeMatched
	case extractor.IsMissingManifest(err):
		return probeSkipped
	default:
		return probeFatal
	}
}

// Discover finds the language of the library at path by probing each
// registered language in registration order.
func (l *Loader) Discover(path string) (*Discovery, error) {
	for _, cfg := range l.registry.All() {
		ex := cfg.NewExtractor()
		meta, err := ex.LibraryMetadata(path)
		outcome := classify(err)
		l.logger.Debug("probed manifest", "language", cfg.Language, "path", path, "outcome", outcome)

		switch outcome {
		case probeMatched:
			return &Discovery{Language: cfg.Language, Extractor: ex, Metadata: meta}, nil
		case probeSkipped:
			continue
		default:
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeMalformedManifest
			}
			return nil, errors.Wrap(code, err, "%s project at %s is invalid", cfg.Name, path)
		}
	}
	return nil, errors.New(errors.ErrCodeDiscoveryNotFound, "no supported library found at %s", path)
}

// resolve returns the discovery for path, skipping the probe when the
// language is given. An explicit language is checked against the registry
// before the filesystem is touched.
func (l *Loader) resolve(path string, language lang.Language) (*Discovery, error) {
	if language == "" {
		return l.Discover(path)
	}

	cfg, err := l.registry.Get(language)
	if err != nil {
		return nil, err
	}
	ex := cfg.NewExtractor()
	meta, err := ex.LibraryMetadata(path)
	if err != nil {
		return nil, err
	}
	return &Discovery{Language: cfg.Language, Extractor: ex, Metadata: meta}, nil
}

// Load extracts the library at path. An empty language means auto-detect.
func (l *Loader) Load(ctx context.Context, path string, language lang.Language) (*Library, error) {
	hooks := observability.Load()
	hooks.OnLoadStart(ctx, path, string(language))
	start := time.Now()

	lib, name, err := l.load(ctx, path, language)

	namespaces := 0
	if lib != nil {
		namespaces = len(lib.Namespaces)
	}
	hooks.OnLoadComplete(ctx, path, name, namespaces, time.Since(start), err)
	return lib, err
}

func (l *Loader) load(ctx context.Context, path string, language lang.Language) (*Library, string, error) {
	d, err := l.resolve(path, language)
	if err != nil {
		return nil, "", err
	}
	name := d.Metadata.Name
	l.logger.Debug("loading library", "name", name, "language", d.Language)

	parser, err := extractor.NewParser(d.Extractor.ParserLanguage())
	if err != nil {
		return nil, name, err
	}
	defer parser.Close()

	namespaces, err := d.Extractor.ExtractPublicAPI(ctx, d.Metadata, parser)
	if err != nil {
		return nil, name, errors.Wrap(errors.ErrCodeExtraction, err, "failed to extract public API")
	}
	l.logger.Debug("extracted public API", "name", name, "namespaces", len(namespaces))

	return &Library{
		Name:          name,
		Version:       d.Metadata.Version,
		Documentation: d.Metadata.Documentation,
		Namespaces:    namespaces,
		Language:      d.Language,
	}, name, nil
}

// LoadDependency loads the dependency name of the library at dependantPath.
// The dependency is loaded with the dependant's language.
func (l *Loader) LoadDependency(ctx context.Context, name, dependantPath string, language lang.Language) (*Library, error) {
	d, err := l.resolve(dependantPath, language)
	if err != nil {
		return nil, err
	}

	path, err := d.Extractor.ResolveDependencyPath(ctx, name, dependantPath)
	observability.Load().OnDependencyResolved(ctx, name, path, err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeDependency, err, "cannot resolve dependency %q", name)
		}
		return nil, err
	}
	l.logger.Debug("resolved dependency", "name", name, "path", path)

	return l.Load(ctx, path, d.Language)
}
