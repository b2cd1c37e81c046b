package engine

import "fmt"

// Options configures an Engine. The zero value is valid: on-disk
// storage, no read cache, and no automatic checkpointing. DefaultOptions
// returns the recommended configuration.
type Options struct {
	// InMemory backs the page store and WAL with in-memory buffers
	// instead of files, for tests and ephemeral use (teacher's
	// engine.Options.InMemory / ":memory:" path convention).
	InMemory bool

	// ReadCacheSize is the number of pages the optional read-path LRU
	// (§4.6) holds. 0 disables the cache; reads always fall through to
	// the page store.
	ReadCacheSize int

	// CheckpointInterval is the number of commits after which Checkpoint
	// runs automatically (§4.8's "e.g. after every N commits" policy
	// knob). 0 disables automatic checkpointing; callers drive it
	// manually by calling Checkpoint themselves.
	CheckpointInterval int
}

// DefaultOptions returns the engine's default configuration: on-disk
// storage, a modest read cache, and checkpointing every 10 commits,
// mirroring the teacher's "every N writes, N=10" cadence note (§9).
func DefaultOptions() *Options {
	return &Options{
		InMemory:           false,
		ReadCacheSize:      256,
		CheckpointInterval: 10,
	}
}

func (o *Options) validate() error {
	if o.ReadCacheSize < 0 {
		return fmt.Errorf("engine: negative ReadCacheSize %d", o.ReadCacheSize)
	}
	if o.CheckpointInterval < 0 {
		return fmt.Errorf("engine: negative CheckpointInterval %d", o.CheckpointInterval)
	}
	return nil
}
