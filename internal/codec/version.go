package codec

import (
	"fmt"
	"runtime/debug"
)

const imagingModule = "github.com/disintegration/imaging"

// Version reports the version of the underlying codec library as recorded in
// the binary's build info.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path != imagingModule {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		return fmt.Sprintf("imaging %s (%s)", dep.Version, info.GoVersion)
	}
	return fmt.Sprintf("imaging (devel) (%s)", info.GoVersion)
}
