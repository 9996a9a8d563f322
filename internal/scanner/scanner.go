package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var errAborted = errors.New("scan aborted")

// ErrQueueFull is returned by Enqueue when the request backlog is at
// capacity.
var ErrQueueFull = errors.New("add queue is full")

const requestBacklog = 16

// Result is the outcome of one add request: the newly added paths in
// discovery order and the count of paths skipped because they were already
// selected. Aborted requests deliver what was collected so far.
type Result struct {
	Added      []string
	Duplicates int
	Aborted    bool
}

// request is one queued add call, held until the worker picks it up.
type request struct {
	ctx        context.Context
	paths      []string
	onProgress func(percent int)
}

// Queue collects files for the selection list. Requests are buffered and
// drained FIFO by a single worker so the duplicate-check set stays
// consistent across additions and callers never wait on I/O. Directory
// arguments are walked recursively.
type Queue struct {
	fsys     afero.Fs
	pool     *ants.Pool
	requests chan request
	results  chan Result

	mu       sync.Mutex
	closed   bool
	existing map[string]struct{}
}

// NewQueue creates a queue seeded with the already-selected paths.
func NewQueue(fsys afero.Fs, existing []string) (*Queue, error) {
	// One worker: requests must not interleave.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(existing))
	for _, path := range existing {
		set[filepath.Clean(path)] = struct{}{}
	}
	q := &Queue{
		fsys:     fsys,
		pool:     pool,
		existing: set,
		requests: make(chan request, requestBacklog),
		results:  make(chan Result, requestBacklog),
	}
	if err := pool.Submit(q.drain); err != nil {
		pool.Release()
		return nil, err
	}
	return q, nil
}

// Enqueue buffers an add request and returns immediately, even while the
// worker is mid-walk on an earlier request. Progress is reported per
// top-level path as a completed percentage; onProgress may be nil. The walk
// checks ctx between steps and aborts cooperatively.
func (q *Queue) Enqueue(ctx context.Context, paths []string, onProgress func(percent int)) error {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return ants.ErrPoolClosed
	}

	select {
	case q.requests <- request{ctx: ctx, paths: paths, onProgress: onProgress}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Results delivers one Result per enqueued request, in request order.
func (q *Queue) Results() <-chan Result {
	return q.results
}

// Close stops accepting requests and releases the worker.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.requests)
	q.pool.Release()
}

func (q *Queue) drain() {
	for req := range q.requests {
		q.results <- q.collect(req.ctx, req.paths, req.onProgress)
	}
}

func (q *Queue) collect(ctx context.Context, paths []string, onProgress func(percent int)) Result {
	var result Result
	total := len(paths)

	for idx, path := range paths {
		if ctx.Err() != nil {
			result.Aborted = true
			break
		}

		info, err := q.fsys.Stat(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error accessing path")
			continue
		}

		if info.IsDir() {
			if q.walkDir(ctx, path, &result) {
				result.Aborted = true
				break
			}
		} else {
			q.add(path, &result)
		}

		if onProgress != nil && total > 0 {
			onProgress((idx + 1) * 100 / total)
		}
	}

	log.Debug().Int("added", len(result.Added)).Int("duplicates", result.Duplicates).Msg("File add request complete")
	return result
}

// walkDir recursively collects files under dir. Returns true when aborted.
func (q *Queue) walkDir(ctx context.Context, dir string, result *Result) bool {
	err := afero.Walk(q.fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error accessing path")
			return nil
		}
		if ctx.Err() != nil {
			return errAborted
		}
		if info.IsDir() {
			return nil
		}
		q.add(path, result)
		return nil
	})
	if errors.Is(err, errAborted) {
		return true
	}
	if err != nil {
		log.Warn().Err(err).Str("path", dir).Msg("Directory walk failed")
	}
	return false
}

func (q *Queue) add(path string, result *Result) {
	clean := filepath.Clean(path)
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.existing[clean]; dup {
		result.Duplicates++
		return
	}
	q.existing[clean] = struct{}{}
	result.Added = append(result.Added, clean)
}

// Track records paths in the duplicate-check set without emitting them,
// e.g. after renames moved selected files to new locations.
func (q *Queue) Track(paths []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, path := range paths {
		q.existing[filepath.Clean(path)] = struct{}{}
	}
}

// Forget removes paths from the duplicate-check set, e.g. after the user
// removes them from the selection.
func (q *Queue) Forget(paths []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, path := range paths {
		delete(q.existing, filepath.Clean(path))
	}
}
