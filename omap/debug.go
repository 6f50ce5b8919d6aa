package omap

import "log"

var hasDebug bool

// SetDebug turns operation tracing on or off for every Map.
func SetDebug(on bool) {
	hasDebug = on
}

func debugf(format string, args ...any) {
	if hasDebug {
		log.Printf("omap: "+format, args...)
	}
}
