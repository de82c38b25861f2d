// Package geneva is a parallel evolutionary-optimization library.
//
// It repeatedly proposes candidate solutions (Individuals) to a
// user-supplied objective function, evaluates them in parallel, selects
// survivors, and produces offspring by adapting the parents' parameters.
// Mixed parameter types, multiple evolutionary strategies, multi-objective
// pareto selection, and a shared high-quality random source live in the
// parameter, adaptor, rng, queue, pool, and engine subpackages; this
// package ties them together around the Individual and Traits types.
package geneva
