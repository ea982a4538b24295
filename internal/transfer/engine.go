// Package transfer implements the engine that copies or moves a file or
// directory tree into a destination directory. Every call runs the same
// guarded sequence: source existence, destination safety, self-nesting,
// destination preparation, then the copy or move itself. The first failing
// guard short-circuits the rest and every outcome is logged and journaled.
package transfer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/wizzomafizzo/datasink/internal/logging"
	"github.com/wizzomafizzo/datasink/internal/safety"
)

// Recorder persists transfer outcomes. Implementations must treat Record as
// append-only; a recording failure never alters the outcome returned to the
// caller.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Engine performs copy and move operations. It holds no mutable state across
// calls; the allowed boundary roots are resolved fresh on every transfer.
type Engine struct {
	fs       afero.Fs
	roots    func() ([]string, error)
	recorder Recorder
	policy   CollisionPolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs replaces the backing filesystem (afero.NewOsFs by default). Only the
// transfer itself goes through the given Fs; the safety-boundary and
// self-nesting guards always resolve paths against the real OS filesystem, so
// callers using an in-memory Fs must pick paths whose boundary relationship
// holds lexically.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithAllowedRoots pins the safety boundary to the given roots instead of
// resolving home and working directory per call.
func WithAllowedRoots(roots ...string) Option {
	return func(e *Engine) {
		e.roots = func() ([]string, error) { return roots, nil }
	}
}

// WithExtraRoots widens the default boundary with additional allowed roots.
func WithExtraRoots(extra ...string) Option {
	return func(e *Engine) {
		e.roots = func() ([]string, error) {
			roots, err := safety.Roots()
			if err != nil {
				return nil, err
			}
			return append(roots, extra...), nil
		}
	}
}

// WithCollisionPolicy selects the directory-copy collision policy
// (PolicyMerge by default).
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(e *Engine) { e.policy = policy }
}

// WithRecorder attaches a journal recorder for transfer history.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates a transfer engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fs:     afero.NewOsFs(),
		roots:  safety.Roots,
		policy: PolicyMerge,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transfer copies or moves source into the destination directory and reports
// a structured outcome. It never returns an error: every anticipated failure
// is converted to an unsuccessful Outcome whose message names the paths and
// operation involved.
func (e *Engine) Transfer(ctx context.Context, source, destination string, op Operation) Outcome {
	out := e.run(ctx, source, destination, op)

	log := logging.Get(ctx)
	if out.Success {
		log.Info().Msg(out.Message)
	} else {
		log.Error().Msg(out.Message)
	}

	if e.recorder != nil {
		rec := Record{
			Time:        time.Now(),
			Source:      source,
			Destination: destination,
			Operation:   op,
			Success:     out.Success,
			Message:     out.Message,
		}
		if err := e.recorder.Record(ctx, rec); err != nil {
			log.Error().Msgf("Failed to record transfer history: %v", err)
		}
	}

	return out
}

func (e *Engine) run(ctx context.Context, source, destination string, op Operation) Outcome {
	if exists, err := afero.Exists(e.fs, source); err != nil || !exists {
		return failure(SourceNotFound,
			"Error: Source path '%s' does not exist.", source)
	}

	if !e.destinationAllowed(ctx, destination) {
		return failure(UnsafeDestination,
			"Error: Destination path '%s' is outside of the allowed directories (your home directory or current working directory).",
			destination)
	}

	if safety.SelfNests(source, destination) {
		return failure(SelfNesting,
			"Error: Cannot copy or move a directory into itself or a subdirectory.")
	}

	if isDir, _ := afero.DirExists(e.fs, destination); !isDir {
		if err := e.fs.MkdirAll(destination, 0o750); err != nil {
			return failure(DestinationCreateFailed,
				"Error: Could not create destination directory '%s'. Reason: %v",
				destination, err)
		}
		logging.Get(ctx).Info().Msgf("Created destination directory: '%s'", destination)
	}

	info, err := e.fs.Stat(source)
	if err != nil {
		// Source vanished between the existence check and dispatch.
		return failure(UnsupportedSourceType,
			"Error: Source path '%s' is not a file or directory.", source)
	}

	switch {
	case info.IsDir():
		return e.transferDir(source, destination, op)
	case info.Mode().IsRegular():
		return e.transferFile(source, destination, op)
	default:
		return failure(UnsupportedSourceType,
			"Error: Source path '%s' is not a file or directory.", source)
	}
}

// destinationAllowed checks the destination against the safety boundary.
// Failure to resolve the boundary roots fails closed.
func (e *Engine) destinationAllowed(ctx context.Context, destination string) bool {
	roots, err := e.roots()
	if err != nil {
		logging.Get(ctx).Error().
			Msgf("Path safety check failed for '%s': %v", destination, err)
		return false
	}
	return safety.Allows(ctx, roots, destination)
}

func (e *Engine) transferDir(source, destination string, op Operation) Outcome {
	target := filepath.Join(destination, filepath.Base(filepath.Clean(source)))

	switch op {
	case OpCopy:
		if e.policy == PolicyTimestamp {
			if exists, _ := afero.DirExists(e.fs, target); exists {
				target = fmt.Sprintf("%s_%s", target, time.Now().Format("20060102_150405"))
			}
		}
		if err := copyTree(e.fs, source, target); err != nil {
			return transferError(op, err)
		}
		return success("Successfully copied directory '%s' to '%s'.", source, target)

	case OpMove:
		if exists, _ := afero.Exists(e.fs, target); exists {
			if err := e.fs.RemoveAll(target); err != nil {
				return transferError(op, err)
			}
		}
		if err := e.fs.Rename(source, target); err != nil {
			return transferError(op, err)
		}
		return success("Successfully moved directory '%s' to '%s'.", source, destination)

	default:
		return failure(InvalidOperation,
			"Invalid operation '%s' specified for directory.", op)
	}
}

func (e *Engine) transferFile(source, destination string, op Operation) Outcome {
	target := filepath.Join(destination, filepath.Base(filepath.Clean(source)))

	switch op {
	case OpCopy:
		if err := copyFile(e.fs, source, target); err != nil {
			return transferError(op, err)
		}
		return success("Successfully copied file '%s' to '%s'.", source, destination)

	case OpMove:
		if err := e.fs.Rename(source, target); err != nil {
			return transferError(op, err)
		}
		return success("Successfully moved file '%s' to '%s'.", source, destination)

	default:
		return failure(InvalidOperation,
			"Invalid operation '%s' specified for file.", op)
	}
}

func success(format string, args ...any) Outcome {
	return Outcome{Success: true, Kind: OK, Message: fmt.Sprintf(format, args...)}
}

func failure(kind Kind, format string, args ...any) Outcome {
	return Outcome{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func transferError(op Operation, err error) Outcome {
	return failure(TransferFailed,
		"An error occurred during the '%s' operation: %v", op, err)
}
