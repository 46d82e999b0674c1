package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ukp-platform/ukp-api/internal/config"
)

// DatabaseReadiness is the name reported when the datastore readiness check
// fails in AssertHealthy.
const DatabaseReadiness = "database-readiness"

// Check modes used as metric labels.
const (
	modeSimple   = "simple"
	modeDetailed = "detailed"
)

// DatabaseStatus is the outcome of a datastore readiness check.
type DatabaseStatus struct {
	Connected      bool
	SchemaUpToDate bool
}

// Ready reports whether the datastore is connected and fully migrated.
func (s DatabaseStatus) Ready() bool {
	return s.Connected && s.SchemaUpToDate
}

// DatabaseChecker reports datastore connectivity and schema status.
type DatabaseChecker interface {
	CheckDatabase(ctx context.Context) (DatabaseStatus, error)
}

// Service aggregates dependency probes into one health verdict. It keeps no
// state between calls; every check probes from scratch.
type Service struct {
	targets []Target
	prober  Prober
	db      DatabaseChecker
	timeout time.Duration
	metrics *Metrics
	logger  *slog.Logger
}

// NewService creates a Service probing the dependencies named by cfg.
// db and metrics are optional. Without db no readiness check runs, and both
// AssertHealthy and DetailedHealth judge only the probed dependencies. A nil
// prober uses a TCPProber.
func NewService(
	cfg *config.Config,
	prober Prober,
	db DatabaseChecker,
	metrics *Metrics,
	logger *slog.Logger,
) *Service {
	if prober == nil {
		prober = NewTCPProber()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		targets: CollectTargets(cfg),
		prober:  prober,
		db:      db,
		timeout: DefaultProbeTimeout,
		metrics: metrics,
		logger:  logger.With("component", "health_service"),
	}
}

// Targets returns the probed dependencies in registry order.
func (s *Service) Targets() []Target {
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	return out
}

type probeOutcome struct {
	err     error
	elapsed time.Duration
}

type databaseOutcome struct {
	status  DatabaseStatus
	err     error
	elapsed time.Duration
}

// run probes every target and, when configured, checks the datastore. It
// returns only after every branch has settled. Branches never return errors
// to the group, so one failure cannot cancel the others.
func (s *Service) run(ctx context.Context) ([]probeOutcome, *databaseOutcome) {
	outcomes := make([]probeOutcome, len(s.targets))
	var dbOutcome *databaseOutcome

	var g errgroup.Group
	for i, target := range s.targets {
		g.Go(func() error {
			start := time.Now()
			err := s.prober.Probe(ctx, ProbeOptions{
				Host:    target.Host,
				Port:    target.Port,
				Timeout: s.timeout,
				Label:   target.Name,
			})
			outcomes[i] = probeOutcome{err: err, elapsed: time.Since(start)}
			return nil
		})
	}

	if s.db != nil {
		dbOutcome = &databaseOutcome{}
		g.Go(func() error {
			start := time.Now()
			status, err := s.checkDatabase(ctx)
			*dbOutcome = databaseOutcome{status: status, err: err, elapsed: time.Since(start)}
			return nil
		})
	}

	_ = g.Wait()

	for i, target := range s.targets {
		s.metrics.observeProbe(target.Name, outcomes[i].elapsed, outcomes[i].err)
		if err := outcomes[i].err; err != nil {
			s.logger.ErrorContext(ctx, "dependency check failed",
				"dependency", target.Name,
				"address", target.Addr(),
				"error", err)
		}
	}
	if dbOutcome != nil && (dbOutcome.err != nil || !dbOutcome.status.Ready()) {
		s.logger.ErrorContext(ctx, "database readiness check failed",
			"connected", dbOutcome.status.Connected,
			"schema_up_to_date", dbOutcome.status.SchemaUpToDate,
			"error", dbOutcome.err)
	}

	return outcomes, dbOutcome
}

// checkDatabase runs the readiness check under the probe timeout. A check
// that outlives the deadline reports a disconnected datastore, even if the
// checker ignores cancellation.
func (s *Service) checkDatabase(ctx context.Context) (DatabaseStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		status DatabaseStatus
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, err := s.db.CheckDatabase(ctx)
		done <- result{status: status, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			return DatabaseStatus{}, fmt.Errorf("%w after %s: %w", ErrProbeTimeout, s.timeout, r.err)
		}
		return r.status, r.err
	case <-ctx.Done():
		return DatabaseStatus{}, fmt.Errorf("%w after %s: %w", ErrProbeTimeout, s.timeout, ctx.Err())
	}
}

// AssertHealthy returns nil when every dependency is reachable and the
// datastore, if checked, is ready. Otherwise it returns an *UnavailableError
// naming every failed dependency in registry order, followed by
// DatabaseReadiness when the datastore check failed.
func (s *Service) AssertHealthy(ctx context.Context) error {
	outcomes, dbOutcome := s.run(ctx)

	var failed []string
	for i, target := range s.targets {
		if outcomes[i].err != nil {
			failed = append(failed, target.Name)
		}
	}
	if dbOutcome != nil && (dbOutcome.err != nil || !dbOutcome.status.Ready()) {
		failed = append(failed, DatabaseReadiness)
	}

	s.metrics.observeCheck(modeSimple, len(failed) == 0)

	if len(failed) > 0 {
		return &UnavailableError{Dependencies: failed}
	}
	return nil
}

// DetailedHealth runs the same checks as AssertHealthy and reports latency
// and error text per dependency plus the datastore sub-report.
func (s *Service) DetailedHealth(ctx context.Context) Report {
	outcomes, dbOutcome := s.run(ctx)

	report := Report{
		Status:       StatusHealthy,
		Dependencies: make(map[string]DependencyReport, len(s.targets)),
	}

	for i, target := range s.targets {
		dep := DependencyReport{
			Status:    StatusHealthy,
			LatencyMS: millis(outcomes[i].elapsed),
		}
		if err := outcomes[i].err; err != nil {
			dep.Status = StatusUnhealthy
			dep.Error = err.Error()
			report.Status = StatusUnhealthy
		}
		report.Dependencies[target.Name] = dep
	}

	if dbOutcome == nil {
		report.Database = DatabaseReport{Error: "database checker not configured"}
	} else {
		report.Database = DatabaseReport{
			Connected:      dbOutcome.status.Connected,
			SchemaUpToDate: dbOutcome.status.SchemaUpToDate,
			LatencyMS:      millis(dbOutcome.elapsed),
		}
		if dbOutcome.err != nil {
			report.Database.Error = dbOutcome.err.Error()
		}
		if !dbOutcome.status.Ready() || dbOutcome.err != nil {
			report.Status = StatusUnhealthy
		}
	}

	s.metrics.observeCheck(modeDetailed, report.Healthy())

	return report
}

func millis(d time.Duration) *int64 {
	ms := d.Milliseconds()
	return &ms
}
