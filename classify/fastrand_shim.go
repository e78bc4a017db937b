package classify

import (
	_ "unsafe" // for go:linkname
)

// github.com/grailbio/hts/sam's free pools pull in sync.fastrand via
// go:linkname. Go 1.19 removed that runtime-provided symbol (the runtime now
// exports only sync.fastrandn), so binaries linking hts/sam fail with
// "relocation target sync.fastrand not defined" on newer toolchains. The
// runtime still defines runtime.fastrand, which is exactly what sync.fastrand
// bridged to through Go 1.18; re-export it under the old name so the link
// succeeds. This restores the original symbol, not a reimplementation.

//go:linkname runtimeFastrand runtime.fastrand
func runtimeFastrand() uint32

//go:linkname syncFastrand sync.fastrand
func syncFastrand() uint32 { return runtimeFastrand() }
