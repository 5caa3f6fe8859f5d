//go:build !callcounters

package field

import "github.com/arcfield/prime/internal/callcounters"

// See callcounters_active.go. This is the zero-overhead default build.

const CallCountersActive = false

func incrementCallCounter(id callcounters.Id) {}
