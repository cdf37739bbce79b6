package table

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/on-the-ground/precalc/domain"
	"github.com/on-the-ground/precalc/internal/log"
	"github.com/on-the-ground/precalc/model"
	"github.com/on-the-ground/precalc/preserve"
)

// Stats describes a finished build.
type Stats struct {
	Entries int
	Span    timespan.TimeSpan
}

// Build evaluates the original over every tuple of the mapper's domain, in
// ascending row-major order, and stores each result at the tuple's offset.
//
// Storage is pre-filled through def before any entry is computed; a nil def
// means the result type has no DefaultBuildTimeValue and fails with
// ErrUnsupportedType. A tuple for which the original fails aborts the build with
// ErrNonTotalComputation naming that tuple.
func Build[R any](orig *preserve.Original[R], m *domain.Mapper, def DefaultFunc[R]) (*Table[R], Stats, error) {
	if def == nil {
		return nil, Stats{}, model.NewError(model.ErrUnsupportedType).
			Function(orig.Name).
			Detail("result type has no default build-time value").
			Build()
	}

	start := time.Now()
	entries := make([]R, m.Size())
	for i := range entries {
		entries[i] = def()
	}

	names := m.Names()
	written := 0
	err := m.Each(func(offset int, args []model.Int) error {
		v, err := orig.Call(args)
		if err != nil {
			return model.NewError(model.ErrNonTotalComputation).
				Function(orig.Name).
				Tuple(names, args).
				Cause(err).
				Build()
		}
		entries[offset] = v
		written++
		return nil
	})
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		Entries: written,
		Span:    timespan.BetweenTimes(start, time.Now()),
	}
	log.Logger().Debug("built lookup table",
		zap.String("function", orig.Name),
		zap.String("original", orig.Internal),
		zap.Stringer("identity", orig.ID),
		zap.Int("dims", m.Dims()),
		zap.Int("entries", stats.Entries),
		zap.Duration("took", stats.Span.Duration()),
	)

	return &Table[R]{name: orig.Name, entries: entries, mapper: m}, stats, nil
}
