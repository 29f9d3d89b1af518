// Package cloner adds a Swift package product to an Xcode project file by
// cloning an existing product of the same package.
//
// Two strategies are available. TextCloner edits the raw document with
// pattern matches and touches the first match of every pattern only.
// TreeCloner parses the document, edits the object graph and writes it back.
package cloner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	DefaultSource       = "FirebaseFirestore"
	DefaultTarget       = "FirebaseMessaging"
	DefaultDependencyID = "DEADBEEF0000000000000001"
	DefaultBuildFileID  = "DEADBEEF0000000000000002"
)

var (
	// ErrNotFound is the only way a clone fails on a well-formed input: one
	// of the records or lists it has to extend is missing.
	ErrNotFound = errors.New("expected pattern not found in document")

	// ErrAlreadyExists is returned by the tree strategy instead of writing
	// a duplicate product or reusing an identifier.
	ErrAlreadyExists = errors.New("already exists")
)

// NotFoundError names the record or list that could not be located.
type NotFoundError struct {
	What string
	Err  error
}

func (e *NotFoundError) Error() string {
	return "could not find " + e.What
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Mode selects a cloning strategy.
type Mode string

const (
	ModeText Mode = "text"
	ModeTree Mode = "tree"
)

// Request describes one clone.
type Request struct {
	// Source is the product name that already exists, Target the one to add.
	Source string
	Target string

	// NativeTarget names the target that receives the product. Only the
	// tree strategy honours it; empty means the first target with a
	// package product list.
	NativeTarget string

	// DependencyID and BuildFileID are the identifiers of the two new
	// records. Ignored when GenerateIDs is set.
	DependencyID string
	BuildFileID  string
	GenerateIDs  bool

	// Filename is used in parse errors only.
	Filename string
}

func (r Request) withDefaults() Request {
	if r.Source == "" {
		r.Source = DefaultSource
	}
	if r.Target == "" {
		r.Target = DefaultTarget
	}
	if !r.GenerateIDs {
		if r.DependencyID == "" {
			r.DependencyID = DefaultDependencyID
		}
		if r.BuildFileID == "" {
			r.BuildFileID = DefaultBuildFileID
		}
	}
	return r
}

// Result reports the identifiers involved in a clone.
type Result struct {
	SourceDependencyID string
	SourceBuildFileID  string
	DependencyID       string
	BuildFileID        string
}

// Cloner turns a project document into one that also carries req.Target.
type Cloner interface {
	Clone(doc []byte, req Request) ([]byte, Result, error)
}

// New returns the strategy for mode.
func New(mode Mode, logger *zap.Logger) (Cloner, error) {
	switch mode {
	case ModeText, "":
		return NewTextCloner(logger), nil
	case ModeTree:
		return NewTreeCloner(logger), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s or %s)", mode, ModeText, ModeTree)
	}
}

// CloneFile reads path, clones and writes the result back over path with
// its original permissions. The file is only written when every step
// succeeded. With dryRun the result goes to out instead.
func CloneFile(path string, c Cloner, req Request, dryRun bool, out io.Writer) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if req.Filename == "" {
		req.Filename = path
	}

	updated, res, err := c.Clone(doc, req)
	if err != nil {
		return res, err
	}

	if dryRun {
		_, err = out.Write(updated)
		return res, err
	}
	if err := os.WriteFile(path, updated, info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
