package annolock

import (
	"runtime"

	"github.com/petermattis/goid"
)

func init() {
	testGoid(getGoidFallback())
}

// extractGID parses the id out of a "goroutine N [state]:" stack header.
func extractGID(stack []byte) int64 {
	return goid.ExtractGID(stack)
}

func getGoidFallback() int64 {
	var buf [64]byte
	return extractGID(buf[:runtime.Stack(buf[:], false)])
}

// testGoid panics if the fast goroutine id disagrees with the one parsed
// from runtime.Stack, which happens when goid lags behind a Go release.
func testGoid(slowID int64) {
	if !goidMatches(slowID) {
		panic("annolock: github.com/petermattis/goid doesn't support this Go version, build with '-tags=slowgoid'")
	}
}
