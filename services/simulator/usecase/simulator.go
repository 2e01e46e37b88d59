package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/geo"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/shardmap"
	"github.com/piresc/fleetwatch/services/simulator"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultTickInterval = 10 * time.Second
	DefaultWorkers      = 10

	// bounds the store lookups that run after a loop was cancelled
	cleanupTimeout = 5 * time.Second
)

var (
	// ErrShuttingDown is returned by StartTrip once Shutdown was called. It is also the
	// cancellation cause of loops stopped by Shutdown, which keep their durable state.
	ErrShuttingDown = errors.New("simulator is shutting down")
)

// Option customises a SimulatorUC
type Option func(*SimulatorUC)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *SimulatorUC) { s.now = now }
}

// WithRandSource replaces the per-trip random generator factory
func WithRandSource(newRand func(tripID string) *rand.Rand) Option {
	return func(s *SimulatorUC) { s.newRand = newRand }
}

// WithNewRelic wraps every tick in a background transaction
func WithNewRelic(app *newrelic.Application) Option {
	return func(s *SimulatorUC) { s.nrApp = app }
}

type tripLoop struct {
	cancel context.CancelCauseFunc
	done   chan struct{}
}

// SimulatorUC runs one explicit loop per active trip. Each loop waits for the tick interval,
// takes a slot from the shared worker pool and advances its own trip; it is the only code that
// deletes the trip's state, so a tick never races with a cancellation.
type SimulatorUC struct {
	interval time.Duration
	mover    *Mover
	repo     simulator.StateRepo
	gw       simulator.SimulatorGW
	workers  *semaphore.Weighted
	loops    *shardmap.Map[*tripLoop]
	nrApp    *newrelic.Application
	now      func() time.Time
	newRand  func(tripID string) *rand.Rand

	root     context.Context
	stopAll  context.CancelCauseFunc
	closing  atomic.Bool
	inflight sync.WaitGroup
}

// NewSimulatorUC creates the position simulator
func NewSimulatorUC(
	cfg models.SimulatorConfig,
	engine *geo.Engine,
	repo simulator.StateRepo,
	gw simulator.SimulatorGW,
	opts ...Option,
) (*SimulatorUC, error) {
	if engine == nil || repo == nil || gw == nil {
		return nil, fmt.Errorf("simulator requires a geo engine, a state repository and a gateway")
	}

	interval := cfg.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	root, stopAll := context.WithCancelCause(context.Background())
	s := &SimulatorUC{
		interval: interval,
		mover:    NewMover(engine, cfg.MinSpeedKmh, cfg.MaxSpeedKmh),
		repo:     repo,
		gw:       gw,
		workers:  semaphore.NewWeighted(int64(workers)),
		loops:    shardmap.New[*tripLoop](),
		now:      time.Now,
		newRand: func(string) *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		root:    root,
		stopAll: stopAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartTrip validates the trip, stores its initial state and starts its loop. Starting a
// trip that is already running is a no-op. No heartbeat is emitted until the first tick.
func (s *SimulatorUC) StartTrip(ctx context.Context, trip models.Trip) error {
	if err := trip.Validate(); err != nil {
		return err
	}
	if s.closing.Load() {
		return ErrShuttingDown
	}

	loopCtx, cancel := context.WithCancelCause(s.root)
	loop := &tripLoop{cancel: cancel, done: make(chan struct{})}
	if !s.loops.SetIfAbsent(trip.ID, loop) {
		cancel(nil)
		logger.Debug("Trip already simulated, ignoring start",
			logger.String("trip_id", trip.ID))
		return nil
	}

	rng := s.newRand(trip.ID)
	state := s.mover.InitialPosition(trip, s.now(), rng)
	if err := s.repo.Save(ctx, state); err != nil {
		s.loops.Delete(trip.ID)
		cancel(nil)
		close(loop.done)
		return fmt.Errorf("failed to store initial state for trip %s: %w", trip.ID, err)
	}

	logger.Info("Trip simulation started",
		logger.String("trip_id", trip.ID),
		logger.String("driver_id", trip.DriverID),
		logger.String("car_id", trip.CarID),
		logger.Stringer("start", state.CurrentLocation),
		logger.Stringer("destination", state.Destination),
		logger.String("speed_kmh", state.SpeedKmh.String()))

	s.spawn(loopCtx, trip.ID, loop, rng)
	return nil
}

// CancelTrip stops a trip's loop and waits until it has deleted the trip's state.
// Cancelling an unknown or finished trip only clears any leftover state.
func (s *SimulatorUC) CancelTrip(ctx context.Context, tripID string) error {
	loop, ok := s.loops.Get(tripID)
	if !ok {
		if err := s.repo.Delete(ctx, tripID); err != nil {
			return fmt.Errorf("failed to delete state of trip %s: %w", tripID, err)
		}
		return nil
	}

	loop.cancel(models.ErrTripCancelled)
	select {
	case <-loop.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resume starts a loop for every stored state that has none, typically after a restart
// with a durable state store. It returns the number of resumed trips.
func (s *SimulatorUC) Resume(ctx context.Context) (int, error) {
	states, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list simulation states: %w", err)
	}

	resumed := 0
	for _, state := range states {
		if s.closing.Load() {
			return resumed, ErrShuttingDown
		}

		loopCtx, cancel := context.WithCancelCause(s.root)
		loop := &tripLoop{cancel: cancel, done: make(chan struct{})}
		if !s.loops.SetIfAbsent(state.TripID, loop) {
			cancel(nil)
			continue
		}
		s.spawn(loopCtx, state.TripID, loop, s.newRand(state.TripID))
		resumed++
	}

	if resumed > 0 {
		logger.Info("Resumed trip simulations", logger.Int("trips", resumed))
	}
	return resumed, nil
}

// ActiveTrips returns the number of running trip loops
func (s *SimulatorUC) ActiveTrips() int {
	return s.loops.Len()
}

// ActiveTripIDs returns the IDs of running trips in lexical order
func (s *SimulatorUC) ActiveTripIDs() []string {
	snapshot := s.loops.Snapshot()
	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Shutdown stops every loop without deleting durable state and waits for in-flight ticks
func (s *SimulatorUC) Shutdown(ctx context.Context) error {
	s.closing.Store(true)
	s.stopAll(ErrShuttingDown)

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Simulator stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("simulator shutdown: %w", ctx.Err())
	}
}

func (s *SimulatorUC) spawn(ctx context.Context, tripID string, loop *tripLoop, rng *rand.Rand) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer close(loop.done)
		defer s.loops.DeleteIf(tripID, func(l *tripLoop) bool { return l == loop })
		defer loop.cancel(nil)

		s.run(ctx, tripID, rng)
	}()
}

func (s *SimulatorUC) run(ctx context.Context, tripID string, rng *rand.Rand) {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.stopped(ctx, tripID)
			return
		case <-timer.C:
		}

		if err := s.workers.Acquire(ctx, 1); err != nil {
			s.stopped(ctx, tripID)
			return
		}
		// a cancellation arriving now takes effect after this tick
		done, err := s.tick(context.WithoutCancel(ctx), tripID, rng)
		s.workers.Release(1)

		if err != nil {
			logger.Error("Trip simulation failed, stopping trip",
				logger.String("trip_id", tripID),
				logger.Err(err))
			s.deleteState(tripID)
			return
		}
		if done {
			return
		}
		timer.Reset(s.interval)
	}
}

// tick advances one trip. It reports done once the trip has no further ticks.
func (s *SimulatorUC) tick(ctx context.Context, tripID string, rng *rand.Rand) (done bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	err = nrpkg.WithBackgroundTransaction(ctx, s.nrApp, "Simulator.Tick",
		map[string]interface{}{"trip.id": tripID},
		func(ctx context.Context) error {
			state, err := s.repo.Get(ctx, tripID)
			if errors.Is(err, models.ErrStateNotFound) {
				logger.ErrorCtx(ctx, "simulation state missing", logger.String("trip_id", tripID))
				done = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load state: %w", err)
			}

			now := s.now()
			next := s.mover.Advance(*state, now, rng)
			if next == nil {
				if err := s.repo.Delete(ctx, tripID); err != nil {
					return fmt.Errorf("failed to delete state of arrived trip: %w", err)
				}
				logger.InfoCtx(ctx, "Trip arrived",
					logger.String("trip_id", tripID),
					logger.String("driver_id", state.DriverID))
				done = true
				return nil
			}

			if err := s.repo.Save(ctx, *next); err != nil {
				return fmt.Errorf("failed to store state: %w", err)
			}
			err = s.gw.PublishHeartbeat(ctx, heartbeatFrom(*next, now))
			if errors.Is(err, models.ErrBusUnavailable) {
				// the state already moved on; the next tick publishes from there
				logger.WarnCtx(ctx, "Heartbeat skipped, bus unavailable",
					logger.String("trip_id", tripID),
					logger.Err(err))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to publish heartbeat: %w", err)
			}
			return nil
		})
	return done, err
}

// stopped runs when a loop's context ends. Cancelled trips lose their state,
// trips stopped by Shutdown keep it for Resume.
func (s *SimulatorUC) stopped(ctx context.Context, tripID string) {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrShuttingDown) {
		logger.Debug("Trip loop stopped for shutdown", logger.String("trip_id", tripID))
		return
	}

	s.deleteState(tripID)
	logger.Info("Trip simulation cancelled",
		logger.String("trip_id", tripID),
		logger.Err(cause))
}

func (s *SimulatorUC) deleteState(tripID string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := s.repo.Delete(ctx, tripID); err != nil {
		logger.Error("Failed to delete simulation state",
			logger.String("trip_id", tripID),
			logger.Err(err))
	}
}

func heartbeatFrom(state models.SimulationState, at time.Time) models.Heartbeat {
	return models.Heartbeat{
		EventID:   uuid.NewString(),
		CarID:     state.CarID,
		DriverID:  state.DriverID,
		TripID:    state.TripID,
		Location:  state.CurrentLocation,
		Geohash:   geo.Geohash(state.CurrentLocation, geo.HeartbeatGeohashPrecision),
		SpeedKmh:  state.SpeedKmh,
		Timestamp: at,
	}
}
