package syncer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/events"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
	"github.com/NielsdaWheelz/conf2wiki/internal/retry"
)

// PageStore is the remote document API the engine drives. Implemented
// by wiki.Client; tests substitute a fake.
type PageStore interface {
	ListPages(ctx context.Context) (map[string]int, error)
	CreatePage(ctx context.Context, title, content, path, locale string) error
	UpdatePage(ctx context.Context, id int, title, content, path, locale string) error
}

// Engine executes one sync run.
type Engine struct {
	store    PageStore
	basePath string
	locale   string
	policy   retry.Policy
	log      logging.Logger
	events   *events.Log // nil disables event logging
}

// New returns an Engine. policy wraps every remote call; events may be nil.
func New(store PageStore, basePath, locale string, policy retry.Policy, log logging.Logger, evlog *events.Log) *Engine {
	return &Engine{
		store:    store,
		basePath: basePath,
		locale:   locale,
		policy:   policy,
		log:      log,
		events:   evlog,
	}
}

// Sync reconciles docs against the remote index under a worker pool of
// the given size.
//
// The remote index is fetched exactly once, before the pool starts, and
// never refreshed: two documents racing for the same not-yet-existing
// path may both attempt a create. That race is an accepted limitation,
// not resolved by locking. A per-document failure never aborts the
// pool; the only fatal error is the index fetch itself.
func (e *Engine) Sync(ctx context.Context, docs []Document, concurrency int) (Report, error) {
	index, err := e.fetchIndex(ctx)
	if err != nil {
		return Report{}, err
	}

	if concurrency < 1 {
		concurrency = 1
	}

	tasks := make(chan Document)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range tasks {
				results <- e.processDocument(ctx, doc, index)
			}
		}()
	}

	go func() {
		for _, doc := range docs {
			tasks <- doc
		}
		close(tasks)
		wg.Wait()
		close(results)
	}()

	var report Report
	for res := range results {
		report.add(res)
	}
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].File < report.Results[j].File
	})

	e.log.Info("upload complete", "created", report.Created, "updated", report.Updated, "failed", report.Failed)
	e.appendEvent("upload_finished", events.UploadFinishedData(report.Created, report.Updated, report.Failed))
	return report, nil
}

// fetchIndex snapshots the remote path -> id mapping, retrying the
// fetch itself. Failure here is fatal: no partial sync is attempted.
func (e *Engine) fetchIndex(ctx context.Context) (map[string]int, error) {
	var index map[string]int
	err := e.wrapped().Do(ctx, func() error {
		var err error
		index, err = e.store.ListPages(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.EIndexFetchFailed, "failed to fetch existing pages", err)
	}
	return index, nil
}

// processDocument runs the single create-or-update call for one
// document, wrapped by the retry policy. Terminal states are final.
func (e *Engine) processDocument(ctx context.Context, doc Document, index map[string]int) Result {
	path := RemotePath(e.basePath, doc.Stem)
	pageID, exists := index[path]

	op := func() error {
		if exists {
			return e.store.UpdatePage(ctx, pageID, doc.Title, doc.Body, path, e.locale)
		}
		return e.store.CreatePage(ctx, doc.Title, doc.Body, path, e.locale)
	}

	if err := e.wrapped().Do(ctx, op); err != nil {
		e.log.Error("failed to process document", "file", doc.File, "error", err.Error())
		e.appendEvent("page_failed", events.PageResultData(doc.File, path, pageID, err.Error()))
		return Result{File: doc.File, Path: path, Outcome: OutcomeFailed, PageID: pageID, Reason: err.Error()}
	}

	if exists {
		e.appendEvent("page_updated", events.PageResultData(doc.File, path, pageID, ""))
		return Result{File: doc.File, Path: path, Outcome: OutcomeUpdated, PageID: pageID}
	}
	e.appendEvent("page_created", events.PageResultData(doc.File, path, 0, ""))
	return Result{File: doc.File, Path: path, Outcome: OutcomeCreated}
}

// wrapped returns the retry policy with logging attached.
func (e *Engine) wrapped() retry.Policy {
	p := e.policy
	if p.OnRetry == nil {
		p.OnRetry = func(attempt int, wait time.Duration, err error) {
			e.log.Warning("attempt failed, retrying", "attempt", attempt, "wait", wait.String(), "error", err.Error())
		}
	}
	return p
}

func (e *Engine) appendEvent(event string, data map[string]any) {
	if e.events == nil {
		return
	}
	_ = e.events.Append(event, data)
}
