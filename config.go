package geneva

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
)

// SortingMode selects one of the five evolutionary-algorithm selection
// schemes.
type SortingMode int

const (
	SortMuPlusLambdaSingleEval SortingMode = iota
	SortMuCommaLambdaSingleEval
	SortMuCommaOnePretain
	SortMuPlusLambdaPareto
	SortMuCommaLambdaPareto
)

// RecombinationMethod selects how child slots are regenerated from
// parents during the recombine phase.
type RecombinationMethod int

const (
	RecombinationRandom RecombinationMethod = iota
	RecombinationValue
	RecombinationAmalgamation
)

// Config is the engine's configuration surface (spec §6). It is a plain
// struct rather than a parsed file or flag set — config-file/CLI parsing
// is explicitly out of scope, and the teacher never parses configuration
// either, treating constructor arguments as its "configuration".
type Config struct {
	NProducerThreads   uint16
	NEvaluationThreads uint16

	PopulationSize int
	NParents       int

	MaxIteration      uint32
	MaxStallIteration uint32
	MaxDuration       time.Duration
	QualityThreshold  *float64

	ReportIteration uint32

	SortingMode          SortingMode
	RecombinationMethod  RecombinationMethod
	AmalgamationLikelihood float64

	GrowthRate        int
	MaxPopulationSize int

	CheckpointInterval  int
	CheckpointBaseName  string
	CheckpointDirectory string

	T0    float64
	Alpha float64

	AdProb      float64
	AdaptAdProb float64
	MinAdProb   float64
	MaxAdProb   float64

	Sigma      float64
	SigmaSigma float64
	MinSigma   float64
	MaxSigma   float64

	AdaptionThreshold uint32

	Maximize bool
}

// DefaultConfig returns a Config with the same defaults the teacher's
// constructors lean on: a hardware-concurrency evaluation thread count
// (and 4 producer threads), a µ+λ single-eval scheme, and adaptor
// defaults whose bounds and threshold match adaptor.DefaultBase, with a
// lower AdProb (0.05 rather than 0.5).
func DefaultConfig() Config {
	n := uint16(runtime.GOMAXPROCS(0))
	if n == 0 {
		n = 1
	}
	return Config{
		NProducerThreads:       4,
		NEvaluationThreads:     n,
		PopulationSize:         10,
		NParents:               2,
		ReportIteration:        0,
		SortingMode:            SortMuPlusLambdaSingleEval,
		RecombinationMethod:    RecombinationRandom,
		AmalgamationLikelihood: 0,
		T0:                     100,
		Alpha:                  0.95,
		AdProb:                 0.05,
		AdaptAdProb:            0,
		MinAdProb:              0,
		MaxAdProb:              1,
		Sigma:                  0.5,
		SigmaSigma:             0.05,
		MinSigma:               0.0001,
		MaxSigma:               2,
		AdaptionThreshold:      1,
	}
}

// Validate rejects inconsistent configuration before any goroutine
// starts, per the fatal-at-setup half of the error taxonomy (spec §7).
func (c Config) Validate() error {
	if c.PopulationSize <= 0 {
		return errors.Wrap(ErrBadConfig, "population_size must be positive")
	}
	if c.NParents <= 0 {
		return errors.Wrap(ErrBadConfig, "n_parents must be positive")
	}
	switch c.SortingMode {
	case SortMuPlusLambdaSingleEval, SortMuPlusLambdaPareto:
		if c.NParents >= c.PopulationSize {
			return errors.Wrap(ErrBadConfig, "n_parents must be < population_size for mu+lambda schemes")
		}
	default:
		if 2*c.NParents > c.PopulationSize {
			return errors.Wrap(ErrBadConfig, "2*n_parents must be <= population_size for mu,lambda schemes")
		}
	}
	if c.AmalgamationLikelihood < 0 || c.AmalgamationLikelihood > 1 {
		return errors.Wrap(ErrBadConfig, "amalgamation_likelihood must be in [0, 1]")
	}
	if c.GrowthRate < 0 {
		return errors.Wrap(ErrBadConfig, "growth_rate must be >= 0")
	}
	if c.MaxPopulationSize != 0 && c.MaxPopulationSize < c.PopulationSize {
		return errors.Wrap(ErrBadConfig, "max_population_size must be >= population_size")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.Wrap(ErrBadConfig, "alpha must be in (0, 1)")
	}
	if c.T0 <= 0 {
		return errors.Wrap(ErrBadConfig, "t0 must be positive")
	}
	for _, p := range []struct {
		name string
		val  float64
	}{
		{"ad_prob", c.AdProb},
		{"min_ad_prob", c.MinAdProb},
		{"max_ad_prob", c.MaxAdProb},
	} {
		if p.val < 0 || p.val > 1 {
			return errors.Wrapf(ErrBadConfig, "%s must be in [0, 1]", p.name)
		}
	}
	if c.MinAdProb > c.MaxAdProb {
		return errors.Wrap(ErrBadConfig, "min_ad_prob must be <= max_ad_prob")
	}
	if c.MinSigma > c.MaxSigma {
		return errors.Wrap(ErrBadConfig, "min_sigma must be <= max_sigma")
	}
	if c.Sigma < 0 || c.MinSigma < 0 {
		return errors.Wrap(ErrBadConfig, "sigma values must be >= 0")
	}
	if c.NEvaluationThreads == 0 {
		return errors.Wrap(ErrBadConfig, "n_evaluation_threads must be positive")
	}
	if c.NProducerThreads == 0 {
		return errors.Wrap(ErrBadConfig, "n_producer_threads must be positive")
	}
	return nil
}
