package gatelog

import (
	"runtime"
	"strings"
)

const (
	unknownFunction = "unknown"
	gatelogPackage  = "pkt.systems/gatelog."
	stdlogPackage   = "log."
)

// CurrentFn returns the name of the calling function without package path. If
// the caller cannot be determined it returns "unknown".
func CurrentFn() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return unknownFunction
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return unknownFunction
	}
	return trimFunctionName(fn.Name())
}

func trimFunctionName(name string) string {
	if name == "" {
		return unknownFunction
	}
	// Remove package path and package prefix.
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return unknownFunction
	}
	return name
}

// callerLocation walks the stack and returns the first frame outside the
// gatelog package and the standard library log package (StdLogger routes
// through it). Every field is populated, falling back to "unknown" and line 0
// when the runtime cannot resolve the frame.
func callerLocation() Location {
	var pcs [16]uintptr
	// Skip runtime.Callers and callerLocation.
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for n > 0 {
		frame, more := frames.Next()
		if frame.Function != "" && !internalFrame(frame.Function) {
			file := frame.File
			if file == "" {
				file = unknownFunction
			}
			return Location{File: file, Line: frame.Line, Function: trimFunctionName(frame.Function)}
		}
		if !more {
			break
		}
	}
	return Location{File: unknownFunction, Function: unknownFunction}
}

func internalFrame(function string) bool {
	return strings.HasPrefix(function, gatelogPackage) || strings.HasPrefix(function, stdlogPackage)
}
