package main

// #include <stdlib.h>
import "C"

import (
	"sync"

	"github.com/arm-software/astcenc-dynamic/astc"
)

var (
	errStringsOnce sync.Once
	errStrings     map[astc.ErrorCode]*C.char
)

// errorCString returns a process-lifetime C string for code, or nil for unknown codes.
func errorCString(code astc.ErrorCode) *C.char {
	errStringsOnce.Do(func() {
		errStrings = make(map[astc.ErrorCode]*C.char)
		for c := astc.Success; c <= astc.ErrDTraceFailure; c++ {
			if s := astc.ErrorString(c); s != "" {
				errStrings[c] = C.CString(s)
			}
		}
	})
	return errStrings[code]
}
