// Package fallback provides the durable backend adapter: a storage.Driver
// that routes every call to a durable driver and, when the durable driver is
// missing or faults, re-issues the identical call against an in-memory driver.
//
// The decision is made per call. Writes accepted by the in-memory driver are
// never copied to the durable store when it recovers; availability wins over
// consistency.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vdk888/knowledge/pkg/knowledge"
	"github.com/vdk888/knowledge/pkg/storage"
)

const (
	backendDurable = "durable"
	backendMemory  = "memory"

	breakerName = "durable-storage"
)

var errNoDurable = errors.New("no durable driver configured")

// BreakerConfig configures the circuit breaker in front of the durable driver.
type BreakerConfig struct {
	// ConsecutiveFailures opens the breaker after this many durable faults in a row.
	ConsecutiveFailures uint32

	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
}

// Config is the configuration of the fallback driver.
type Config struct {
	// Durable is the store of record. Nil means the durable store could not
	// be constructed and every call is served by Fallback.
	Durable storage.Driver

	// Fallback serves calls the durable driver cannot. Required.
	Fallback storage.Driver

	// Breaker guards the durable driver. Nil disables the breaker.
	Breaker *BreakerConfig

	// Logger records each degradation.
	Logger *slog.Logger
}

// Driver implements storage.Driver with per-call fallback.
type Driver struct {
	durable  storage.Driver
	fallback storage.Driver
	breaker  *gobreaker.CircuitBreaker[any]
	logger   *slog.Logger
}

// NewDriver creates a fallback driver.
func NewDriver(c Config) (*Driver, error) {
	if c.Fallback == nil {
		return nil, errors.New("fallback driver is required")
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Driver{
		durable:  c.Durable,
		fallback: c.Fallback,
		logger:   logger,
	}

	if c.Durable == nil {
		logger.Warn("no durable storage, serving every call from the in-memory store",
			"error", fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, errNoDurable),
		)
	}

	if c.Durable != nil && c.Breaker != nil {
		d.breaker = newBreaker(*c.Breaker, logger)
	}

	return d, nil
}

func newBreaker(c BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[any] {
	breakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     c.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.ConsecutiveFailures
		},
		// Caller errors are answers from a healthy store.
		IsSuccessful: func(err error) bool {
			return err == nil || storage.IsCallerError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("durable storage breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})
}

// Available reports whether a durable driver was configured.
func (d *Driver) Available() bool {
	return d.durable != nil
}

// Close closes both drivers.
func (d *Driver) Close() error {
	var errs []error
	if d.durable != nil {
		errs = append(errs, d.durable.Close())
	}
	errs = append(errs, d.fallback.Close())
	return errors.Join(errs...)
}

// run executes call against the durable driver and falls back to the
// in-memory driver on a fault. It returns the backend that served the result.
func run[T any](ctx context.Context, d *Driver, op string, call func(storage.Driver) (T, error)) (T, string, error) {
	if d.durable != nil {
		v, err := d.callDurable(func(s storage.Driver) (any, error) { return call(s) })
		if err == nil || storage.IsCallerError(err) {
			storageCalls.WithLabelValues(backendDurable, op, outcome(err)).Inc()
			result, _ := v.(T)
			return result, backendDurable, err
		}

		storageCalls.WithLabelValues(backendDurable, op, "fault").Inc()
		d.degrade(ctx, op, err)
	} else {
		d.logger.DebugContext(ctx, "serving from in-memory store", "operation", op, "reason", errNoDurable)
	}

	storageFallbacks.WithLabelValues(op).Inc()

	v, err := call(d.fallback)
	storageCalls.WithLabelValues(backendMemory, op, outcome(err)).Inc()
	return v, backendMemory, err
}

func do[T any](ctx context.Context, d *Driver, op string, call func(storage.Driver) (T, error)) (T, error) {
	v, _, err := run(ctx, d, op, call)
	return v, err
}

func (d *Driver) callDurable(call func(storage.Driver) (any, error)) (any, error) {
	if d.breaker == nil {
		return call(d.durable)
	}
	return d.breaker.Execute(func() (any, error) {
		return call(d.durable)
	})
}

func (d *Driver) degrade(ctx context.Context, op string, err error) {
	d.logger.WarnContext(ctx, "durable storage call failed, using in-memory store",
		"operation", op,
		"error", fmt.Errorf("%w: %w", storage.ErrBackendUnavailable, err),
	)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case storage.IsCallerError(err):
		return "caller_error"
	default:
		return "fault"
	}
}

// GetKnowledgeGraph fetches nodes and links independently, each with its own
// fallback decision. When they come from different backends, links whose
// endpoints are not among the nodes are dropped and logged.
func (d *Driver) GetKnowledgeGraph(ctx context.Context) (*knowledge.KnowledgeGraph, error) {
	nodes, nodesFrom, err := run(ctx, d, "getKnowledgeGraph.nodes", func(s storage.Driver) ([]knowledge.Concept, error) {
		return s.GetConcepts(ctx)
	})
	if err != nil {
		return nil, err
	}

	links, linksFrom, err := run(ctx, d, "getKnowledgeGraph.links", func(s storage.Driver) ([]knowledge.ConceptRelationship, error) {
		return s.ListConceptRelationships(ctx)
	})
	if err != nil {
		return nil, err
	}

	g := knowledge.NewKnowledgeGraph(nodes, links)

	if nodesFrom != linksFrom {
		if dropped := g.OrphanLinks(); dropped > 0 {
			graphOrphanLinks.Add(float64(dropped))
			d.logger.WarnContext(ctx, "provenance inconsistency in knowledge graph, dropped orphan links",
				"nodes_from", nodesFrom,
				"links_from", linksFrom,
				"dropped", dropped,
			)
		}
	}

	return g, nil
}
