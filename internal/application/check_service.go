package application

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/flaggate/flaggate/internal/domain"
	"github.com/flaggate/flaggate/internal/domain/extract"
	"github.com/flaggate/flaggate/internal/domain/validate"
)

// CheckService orchestrates the governance pipeline:
// registry fetch -> changed files -> parallel extraction -> registry
// intersection -> rule evaluation -> report.
type CheckService struct {
	changes  domain.ChangeSource
	registry domain.FlagRegistry
	workers  int
	now      func() time.Time
}

func NewCheckService(changes domain.ChangeSource, registry domain.FlagRegistry) *CheckService {
	return &CheckService{
		changes:  changes,
		registry: registry,
		workers:  runtime.GOMAXPROCS(0),
		now:      time.Now,
	}
}

// WithWorkers overrides the extraction worker count (minimum 1).
func (s *CheckService) WithWorkers(n int) *CheckService {
	if n > 0 {
		s.workers = n
	}
	return s
}

// withClock pins the evaluation clock; used by tests.
func (s *CheckService) withClock(now func() time.Time) *CheckService {
	s.now = now
	return s
}

// Run executes one analysis. It either completes and returns one Report, or
// aborts with an error before any report exists: a registry or diff failure
// is never papered over with partial data, because an incomplete registry
// would make the smart filter and the rule engine silently wrong.
func (s *CheckService) Run(ctx context.Context, pol domain.PolicyConfig, before, after string) (*domain.Report, error) {
	reg, err := s.registry.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching flag registry: %w", err)
	}

	files, err := s.changes.Changes(ctx, before, after)
	if err != nil {
		return nil, fmt.Errorf("collecting changed files: %w", err)
	}

	candidates, warnings := s.extractAll(files)
	warnings = append(warnings, reg.Warnings...)
	sort.Strings(warnings)

	used := domain.FilterCandidates(candidates, reg)
	violations := validate.Evaluate(used, reg, pol, s.now())

	return domain.BuildReport(violations, warnings, used, len(files), len(reg.Flags)), nil
}

// fileOutcome carries one file's extraction result off a worker.
type fileOutcome struct {
	usages  []domain.CandidateUsage
	warning string
}

// extractAll fans the changed files out over a worker pool. Per-file
// extraction is stateless, so the only shared step is the merge into the
// candidate set, and the set sorts on read, so worker scheduling never
// leaks into report ordering.
func (s *CheckService) extractAll(files []domain.ChangedFile) (*domain.CandidateSet, []string) {
	fileCh := make(chan domain.ChangedFile, len(files))
	outCh := make(chan fileOutcome, len(files))

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range fileCh {
				usages, err := extract.File(f)
				if err != nil {
					outCh <- fileOutcome{warning: fmt.Sprintf("skipped %s: %v", f.Path, err)}
					continue
				}
				outCh <- fileOutcome{usages: usages}
			}
		}()
	}

	for _, f := range files {
		fileCh <- f
	}
	close(fileCh)
	wg.Wait()
	close(outCh)

	candidates := domain.NewCandidateSet()
	var warnings []string
	for out := range outCh {
		candidates.AddAll(out.usages)
		if out.warning != "" {
			warnings = append(warnings, out.warning)
		}
	}
	return candidates, warnings
}
