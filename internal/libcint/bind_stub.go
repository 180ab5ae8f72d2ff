//go:build !libcint || !cgo

package libcint

var bindings = map[string]binding{}
