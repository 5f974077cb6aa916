//go:build !slowgoid
// +build !slowgoid

package annolock

import "github.com/petermattis/goid"

var getGoid = goid.Get

func goidMatches(slowID int64) bool {
	return getGoid() == slowID
}
