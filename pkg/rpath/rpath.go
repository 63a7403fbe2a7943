package rpath

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// DefaultToken is the ELF dynamic-linker token for the directory containing
	// the loaded binary.
	DefaultToken = "$ORIGIN"

	// ListSeparator separates entries in an RPATH string.
	ListSeparator = ":"
)

var (
	// ErrMissingOrigin indicates the origin directory was not provided.
	ErrMissingOrigin = errors.New("missing origin directory")

	// ErrEmptyPath indicates an empty dependency path was provided.
	ErrEmptyPath = errors.New("no path specified")

	// ErrRelPath indicates a dependency could not be made relative to the origin.
	ErrRelPath = errors.New("relative path")

	// ErrInvalidOption indicates a [Resolver] option was rejected.
	ErrInvalidOption = errors.New("invalid option")
)

// Resolver computes RPATH entries relative to an origin directory. Relative
// inputs are resolved against its working directory.
type Resolver struct {
	logger  *slog.Logger
	workDir string
	token   string
}

type ResolverOpts func(*Resolver)

// WithWorkDir sets the absolute directory that relative inputs are resolved
// against. By default the process working directory is used.
func WithWorkDir(dir string) ResolverOpts {
	return func(r *Resolver) {
		r.workDir = dir
	}
}

// WithToken sets the token each entry is prefixed with, e.g. `@loader_path`
// for Mach-O binaries.
func WithToken(token string) ResolverOpts {
	return func(r *Resolver) {
		r.token = token
	}
}

func WithLogger(logger *slog.Logger) ResolverOpts {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a new [Resolver].
func NewResolver(opts ...ResolverOpts) (*Resolver, error) {
	r := &Resolver{
		logger: slog.Default(),
		token:  DefaultToken,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.token == "" {
		return nil, fmt.Errorf("%w: token must not be empty", ErrInvalidOption)
	}

	if r.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}

		r.workDir = wd
	}

	if !filepath.IsAbs(r.workDir) {
		return nil, fmt.Errorf("%w: working directory %q is not absolute", ErrInvalidOption, r.workDir)
	}

	r.workDir = filepath.Clean(r.workDir)

	return r, nil
}

// Compute returns the [Result] for origin and deps using a [Resolver] with
// default options.
func Compute(origin string, deps []string) (Result, error) {
	r, err := NewResolver()
	if err != nil {
		return Result{}, err
	}

	return r.Compute(origin, deps)
}

// Compute makes every dependency in deps relative to origin and prefixes it
// with the resolver's token. Entries keep the order of deps.
func (r *Resolver) Compute(origin string, deps []string) (Result, error) {
	res := Result{
		Origin:  r.abs(origin),
		Token:   r.token,
		Entries: make([]Entry, 0, len(deps)),
	}

	logger := r.logger.With(slog.String("origin", res.Origin))

	for i, dep := range deps {
		rel, err := r.Rel(origin, dep)
		if err != nil {
			return Result{}, fmt.Errorf("dependency %d (%q): %w", i, dep, err)
		}

		e := Entry{
			Path:     dep,
			Relative: rel,
			Value:    r.token + "/" + rel,
		}
		logger.Debug("computed rpath entry",
			slog.String("path", dep),
			slog.String("value", e.Value),
		)

		res.Entries = append(res.Entries, e)
	}

	return res, nil
}

// Rel returns the lexical relative path from origin to dep. Both are made
// absolute against the resolver's working directory first, so mixing
// absolute and relative inputs is allowed. If dep and origin name the same
// directory, Rel returns ".".
func (r *Resolver) Rel(origin, dep string) (string, error) {
	if dep == "" {
		return "", ErrEmptyPath
	}

	rel, err := filepath.Rel(r.abs(origin), r.abs(dep))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRelPath, err)
	}

	return rel, nil
}

// abs returns the cleaned absolute form of path. An empty path is the
// working directory.
func (r *Resolver) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(r.workDir, path)
}
