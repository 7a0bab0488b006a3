package emit

import "github.com/tricore-dbt/trcore/internal/tricore/cpustate"

// Globals aliases cpustate.Globals so emitter signatures read as this
// package's own vocabulary without a second import at every call site.
type Globals = cpustate.Globals
