//go:build callcounters

package field

import "github.com/arcfield/prime/internal/callcounters"

// This file is only compiled if tags=callcounters is set, otherwise
// callcounters_inactive.go supplies the no-op versions. Call counters add
// a small amount of bookkeeping overhead to every multiplication, which is
// why this package keeps them behind a build tag rather than compiling
// them in unconditionally.

// CallCountersActive reports whether this build was compiled with the
// callcounters tag.
const CallCountersActive = true

func incrementCallCounter(id callcounters.Id) {
	id.Increment()
}
