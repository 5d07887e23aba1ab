// Package refdata loads and serves the static reference data the valuation
// pipeline reads: comparable listings, regional rental rates, and adjustment
// tables. The store is loaded once at application start, is read-only for
// the life of the process, and tolerates any missing source by substituting
// an empty or default table.
package refdata

import (
	"fmt"
	"sync"

	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Sources names the locations of the three reference data tables. Any empty
// or unreadable location yields an empty table rather than a load failure.
type Sources struct {
	ComparablesFile   string
	ComparablesSQLite string
	RentalRatesFile   string
	AdjustmentsFile   string
}

// Availability reports which reference data sources held usable data; the
// confidence score consumes it.
type Availability struct {
	Comparables bool
	RentalRates bool
}

// Store is the process-wide reference data snapshot. Concurrent valuations
// read it freely; the only mutation path is an explicit Reload, which swaps
// the snapshot under the lock.
type Store struct {
	logger  *zap.Logger
	sources Sources
	static  bool

	mu          sync.RWMutex
	comparables []crane.ComparableRecord
	rentalRates []crane.RentalRate
	tables      crane.AdjustmentTables
}

// Load constructs a Store and performs the initial load. Missing sources are
// logged and substituted; Load itself only fails on a malformed file, never
// on an absent one.
func Load(logger *zap.Logger, sources Sources) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{logger: logger, sources: sources}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStatic builds a Store directly from in-memory tables, bypassing the
// file sources. Embedding callers and tests use it to pin a reference data
// snapshot. Zero-valued adjustment tables resolve to the built-in defaults.
func NewStatic(logger *zap.Logger, comparables []crane.ComparableRecord, rentalRates []crane.RentalRate, tables crane.AdjustmentTables) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tables.ManufacturerPremium == nil && tables.RegionalMultiplier == nil &&
		tables.DepreciationCurve == nil && tables.CostPerTon == nil {
		tables = crane.DefaultAdjustmentTables()
	}
	return &Store{
		logger:      logger,
		static:      true,
		comparables: filterPriced(comparables),
		rentalRates: rentalRates,
		tables:      tables,
	}
}

// Reload re-reads all sources and atomically replaces the snapshot. On a
// store built with NewStatic there are no sources to re-read, so the
// in-memory tables are kept as-is.
func (s *Store) Reload() error {
	if s.static {
		s.logger.Debug("static reference data store, reload keeps the in-memory tables",
			zap.String("op", "refdata.Reload"),
		)
		return nil
	}
	comparables, err := s.loadComparables()
	if err != nil {
		return fmt.Errorf("load comparables: %w", err)
	}
	rentalRates, err := s.loadRentalRates()
	if err != nil {
		return fmt.Errorf("load rental rates: %w", err)
	}
	tables, err := s.loadAdjustmentTables()
	if err != nil {
		return fmt.Errorf("load adjustment tables: %w", err)
	}

	s.mu.Lock()
	s.comparables = comparables
	s.rentalRates = rentalRates
	s.tables = tables
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("reference data loaded: %d comparables, %d rental rates", len(comparables), len(rentalRates)),
		zap.String("op", "refdata.Reload"),
	)
	return nil
}

// Snapshot is one coherent view of all three reference data tables, taken
// under a single lock so a concurrent Reload can never hand a reader mixed
// generations.
type Snapshot struct {
	Comparables []crane.ComparableRecord
	RentalRates []crane.RentalRate
	Tables      crane.AdjustmentTables
}

// Availability reports which sources produced data in this snapshot.
func (sn Snapshot) Availability() Availability {
	return Availability{
		Comparables: len(sn.Comparables) > 0,
		RentalRates: len(sn.RentalRates) > 0,
	}
}

// Snapshot returns the current reference data snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Comparables: s.comparables,
		RentalRates: s.rentalRates,
		Tables:      s.tables,
	}
}

// Comparables returns the comparable listing snapshot.
func (s *Store) Comparables() []crane.ComparableRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comparables
}

// RentalRates returns the regional rental rate snapshot.
func (s *Store) RentalRates() []crane.RentalRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rentalRates
}

// Tables returns the adjustment tables, always fully populated because
// missing entries fall back to the built-in defaults.
func (s *Store) Tables() crane.AdjustmentTables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables
}

// Availability reports which sources produced data.
func (s *Store) Availability() Availability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Availability{
		Comparables: len(s.comparables) > 0,
		RentalRates: len(s.rentalRates) > 0,
	}
}

func (s *Store) loadComparables() ([]crane.ComparableRecord, error) {
	var records []crane.ComparableRecord

	switch {
	case s.sources.ComparablesSQLite != "":
		loaded, err := loadComparablesSQLite(s.sources.ComparablesSQLite)
		if err != nil {
			s.logger.Warn("comparable listings database unavailable, continuing with empty table",
				zap.String("op", "refdata.loadComparables"),
				zap.String("path", s.sources.ComparablesSQLite),
				zap.Error(err),
			)
			return nil, nil
		}
		records = loaded
	case s.sources.ComparablesFile != "":
		v, ok := s.readSource(s.sources.ComparablesFile, "comparable listings")
		if !ok {
			return nil, nil
		}
		if err := v.UnmarshalKey("comparables", &records); err != nil {
			return nil, fmt.Errorf("unable to decode comparables at %s: %w", s.sources.ComparablesFile, err)
		}
	default:
		s.logger.Warn("no comparable listings source configured",
			zap.String("op", "refdata.loadComparables"),
		)
		return nil, nil
	}

	return filterPriced(records), nil
}

func (s *Store) loadRentalRates() ([]crane.RentalRate, error) {
	if s.sources.RentalRatesFile == "" {
		s.logger.Warn("no rental rates source configured",
			zap.String("op", "refdata.loadRentalRates"),
		)
		return nil, nil
	}
	v, ok := s.readSource(s.sources.RentalRatesFile, "rental rates")
	if !ok {
		return nil, nil
	}
	var rates []crane.RentalRate
	if err := v.UnmarshalKey("rentalRates", &rates); err != nil {
		return nil, fmt.Errorf("unable to decode rental rates at %s: %w", s.sources.RentalRatesFile, err)
	}
	return rates, nil
}

func (s *Store) loadAdjustmentTables() (crane.AdjustmentTables, error) {
	tables := crane.DefaultAdjustmentTables()
	if s.sources.AdjustmentsFile == "" {
		return tables, nil
	}
	v, ok := s.readSource(s.sources.AdjustmentsFile, "adjustment tables")
	if !ok {
		return tables, nil
	}

	var overrides crane.AdjustmentTables
	if err := v.Unmarshal(&overrides); err != nil {
		return tables, fmt.Errorf("unable to decode adjustment tables at %s: %w", s.sources.AdjustmentsFile, err)
	}

	// Supplied tables override the built-in defaults wholesale per table;
	// tables absent from the file keep the defaults.
	if len(overrides.ManufacturerPremium) > 0 {
		tables.ManufacturerPremium = overrides.ManufacturerPremium
	}
	if len(overrides.RegionalMultiplier) > 0 {
		tables.RegionalMultiplier = overrides.RegionalMultiplier
	}
	if len(overrides.DepreciationCurve) > 0 {
		tables.DepreciationCurve = overrides.DepreciationCurve
	}
	if len(overrides.CostPerTon) > 0 {
		tables.CostPerTon = overrides.CostPerTon
	}
	return tables, nil
}

// readSource opens one YAML source with its own viper instance. A missing or
// unreadable file logs a warning and reports ok=false so the caller degrades
// to an empty table.
func (s *Store) readSource(path, label string) (*viper.Viper, bool) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		s.logger.Warn(fmt.Sprintf("%s source unavailable, continuing with empty table", label),
			zap.String("op", "refdata.readSource"),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, false
	}
	return v, true
}

// filterPriced drops records without a positive price; they cannot anchor a
// comparison.
func filterPriced(records []crane.ComparableRecord) []crane.ComparableRecord {
	var out []crane.ComparableRecord
	for _, r := range records {
		if r.Price > 0 {
			out = append(out, r)
		}
	}
	return out
}
