package shake

import "math/rand/v2"

type PlayerBuilderOption func(*playerImpl)

// WithSeed makes the random phase offsets of started shakes reproducible.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - PlayerBuilderOption: a function that seeds the player
func WithSeed(seed uint64) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}
