package claims

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/vestinglabs/claimgate/hash"
	"github.com/vestinglabs/claimgate/logging"
	"github.com/vestinglabs/claimgate/merkle"
)

//go:generate mockgen -package mocks -destination mocks/collaborators.go . ScheduleService,AccessController

// ScheduleService is the external vesting engine. It owns schedule
// storage and the vesting math; the coordinator only hands it claims
// whose proofs verified.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, claim Claim) error
}

// AccessController is the surrounding pause/role infrastructure.
type AccessController interface {
	Paused(ctx context.Context) bool
	HasAdminRole(ctx context.Context, caller NodeID) bool
}

var (
	ErrPaused         = errors.New("claiming is paused")
	ErrInvalidProof   = errors.New("proof does not verify against the current root")
	ErrAlreadyClaimed = errors.New("schedule already claimed")
	ErrUnauthorized   = errors.New("caller lacks the root admin role")
	ErrNoRoot         = errors.New("no root committed")
)

var (
	claimAttemptsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "claimgate",
		Subsystem: "claims",
		Name:      "attempts_total",
		Help:      "Number of claim attempts by outcome",
	}, []string{"outcome"})

	rootRotationsMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "claimgate",
		Subsystem: "root",
		Name:      "rotations_total",
		Help:      "Number of root rotations",
	})
)

// RootUpdate notifies off-system observers (tree and proof publishers)
// of a rotation.
type RootUpdate struct {
	Root     []byte
	Previous []byte
}

// Coordinator orchestrates the claim flow: derive the leaf from the
// caller's identity and parameters, verify the proof against the
// current root, then consume the leaf and delegate schedule creation
// as one atomic unit.
//
// All mutating operations are serialized by a single mutex, which also
// acts as the guard held across the delegation call.
type Coordinator struct {
	cfg Config
	db  *database

	mutex sync.Mutex
	root  []byte

	schedules ScheduleService
	access    AccessController

	subscriberMutex sync.Mutex
	subscribers     map[int]chan RootUpdate
	nextSubscriber  int
}

type newCoordinatorOptionFunc func(*newCoordinatorOptions)

type newCoordinatorOptions struct {
	cfg  Config
	root []byte
}

func WithConfig(cfg Config) newCoordinatorOptionFunc {
	return func(opts *newCoordinatorOptions) {
		opts.cfg = cfg
	}
}

// WithInitialRoot sets the root committed at first startup. It is
// ignored when the data directory already holds a root.
func WithInitialRoot(root []byte) newCoordinatorOptionFunc {
	return func(opts *newCoordinatorOptions) {
		opts.root = root
	}
}

func New(
	ctx context.Context,
	dbdir string,
	schedules ScheduleService,
	access AccessController,
	opts ...newCoordinatorOptionFunc,
) (*Coordinator, error) {
	options := newCoordinatorOptions{
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	db, err := newDatabase(filepath.Join(dbdir, "claims"), options.cfg.LeafCacheSize)
	if err != nil {
		return nil, fmt.Errorf("opening claims database: %w", err)
	}

	c := &Coordinator{
		cfg:         options.cfg,
		db:          db,
		schedules:   schedules,
		access:      access,
		subscribers: make(map[int]chan RootUpdate),
	}

	stored, err := db.Root(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	switch {
	case stored != nil:
		// rotations survive restarts; a stale initial root must not
		// override the stored one
		c.root = stored
		logging.FromContext(ctx).Info("resuming with stored root", zap.String("root", hex.EncodeToString(stored)))
	case len(options.root) != hash.DigestSize:
		db.Close()
		return nil, fmt.Errorf("%w: initial root of %d bytes", ErrNoRoot, len(options.root))
	default:
		if err := db.ReplaceRoot(ctx, options.root); err != nil {
			db.Close()
			return nil, fmt.Errorf("committing initial root: %w", err)
		}
		c.root = append([]byte{}, options.root...)
		logging.FromContext(ctx).Info("committed initial root", zap.String("root", hex.EncodeToString(c.root)))
	}

	return c, nil
}

func (c *Coordinator) Close() error {
	return c.db.Close()
}

// Claim verifies the caller's proof for the schedule parameters and, on
// success, consumes the derived leaf and creates the schedule with the
// caller as beneficiary. The leaf is derived from the caller's own
// identity: one cannot claim a schedule committed to someone else.
func (c *Coordinator) Claim(ctx context.Context, caller NodeID, params ScheduleParams, proof merkle.Proof) error {
	logger := logging.FromContext(ctx).Named("claim").With(zap.Stringer("caller", caller))

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.access.Paused(ctx) {
		claimAttemptsMetric.WithLabelValues("paused").Inc()
		return ErrPaused
	}

	claim := Claim{Beneficiary: caller, ScheduleParams: params}
	leaf := claim.Leaf()

	if !merkle.Verify(c.root, leaf, proof) {
		logger.Debug(
			"rejecting claim",
			zap.String("leaf", hex.EncodeToString(leaf)),
			zap.Int("proof_len", len(proof.Siblings)),
		)
		claimAttemptsMetric.WithLabelValues("invalid_proof").Inc()
		return fmt.Errorf("%w: leaf %X", ErrInvalidProof, leaf)
	}

	err := c.db.Consume(ctx, leaf, func() error {
		return c.schedules.CreateSchedule(ctx, claim)
	})
	switch {
	case errors.Is(err, ErrAlreadyClaimed):
		claimAttemptsMetric.WithLabelValues("already_claimed").Inc()
		return err
	case err != nil:
		logger.Debug("schedule creation failed, claim rolled back", zap.Error(err))
		claimAttemptsMetric.WithLabelValues("schedule_error").Inc()
		return err
	}

	claimAttemptsMetric.WithLabelValues("accepted").Inc()
	logger.Info(
		"claim accepted",
		zap.String("leaf", hex.EncodeToString(leaf)),
		zap.Uint64("amount", params.Amount),
	)
	return nil
}

// Claimed reports whether the claim derived from the given beneficiary
// and parameters was consumed. It is a pure lookup: any beneficiary may
// be queried and no pause or role gates apply.
func (c *Coordinator) Claimed(ctx context.Context, beneficiary NodeID, params ScheduleParams) (bool, error) {
	claim := Claim{Beneficiary: beneficiary, ScheduleParams: params}
	return c.db.IsConsumed(ctx, claim.Leaf())
}

// RotateRoot replaces the current root. Proofs against the superseded
// root stop verifying immediately; already-consumed leaves stay
// consumed.
func (c *Coordinator) RotateRoot(ctx context.Context, caller NodeID, newRoot []byte) error {
	if len(newRoot) != hash.DigestSize {
		return fmt.Errorf("invalid root length: %d", len(newRoot))
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.access.HasAdminRole(ctx, caller) {
		return fmt.Errorf("%w: caller %s", ErrUnauthorized, caller)
	}

	previous := c.root
	if err := c.db.ReplaceRoot(ctx, newRoot); err != nil {
		return fmt.Errorf("replacing root: %w", err)
	}
	c.root = append([]byte{}, newRoot...)
	rootRotationsMetric.Inc()

	c.notify(RootUpdate{Root: append([]byte{}, newRoot...), Previous: previous})
	logging.FromContext(ctx).Info(
		"root rotated",
		zap.String("root", hex.EncodeToString(newRoot)),
		zap.Stringer("caller", caller),
	)
	return nil
}

// Root returns the currently committed root.
func (c *Coordinator) Root() []byte {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]byte{}, c.root...)
}

// RegisterForRootUpdates subscribes to rotation notifications until ctx
// is done. Delivery to a subscriber that stopped draining its channel
// is dropped rather than blocking the rotation.
func (c *Coordinator) RegisterForRootUpdates(ctx context.Context) <-chan RootUpdate {
	c.subscriberMutex.Lock()
	defer c.subscriberMutex.Unlock()

	id := c.nextSubscriber
	c.nextSubscriber++
	updates := make(chan RootUpdate, c.cfg.RootUpdateBuffer)
	c.subscribers[id] = updates

	go func() {
		<-ctx.Done()
		c.subscriberMutex.Lock()
		defer c.subscriberMutex.Unlock()
		delete(c.subscribers, id)
		close(updates)
	}()

	return updates
}

func (c *Coordinator) notify(update RootUpdate) {
	c.subscriberMutex.Lock()
	defer c.subscriberMutex.Unlock()
	for _, updates := range c.subscribers {
		select {
		case updates <- update:
		default:
		}
	}
}
