//go:build slowgoid
// +build slowgoid

package annolock

var getGoid = getGoidFallback

func goidMatches(slowID int64) bool {
	return getGoidFallback() == slowID
}
