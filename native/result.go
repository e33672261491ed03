// Package native mirrors the C side of the graphics API: opaque handles,
// result codes, fixed-layout records and the entry point signatures a
// Driver hands out when asked for a command by name.
package native

import "strconv"

// Result is a raw status code returned by a native command
type Result int32

// Status codes, values as defined by the native headers
const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	EventSet                  Result = 3
	EventReset                Result = 4
	Incomplete                Result = 5
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorFormatNotSupported   Result = -11
	ErrorSurfaceLost          Result = -1000000000
	ErrorNativeWindowInUse    Result = -1000000001
	Suboptimal                Result = 1000001003
	ErrorOutOfDate            Result = -1000001004
	ErrorValidationFailed     Result = -1000011001
)

var resultNames = map[Result]string{
	Success:                   "Success",
	NotReady:                  "NotReady",
	Timeout:                   "Timeout",
	EventSet:                  "EventSet",
	EventReset:                "EventReset",
	Incomplete:                "Incomplete",
	ErrorOutOfHostMemory:      "ErrorOutOfHostMemory",
	ErrorOutOfDeviceMemory:    "ErrorOutOfDeviceMemory",
	ErrorInitializationFailed: "ErrorInitializationFailed",
	ErrorDeviceLost:           "ErrorDeviceLost",
	ErrorMemoryMapFailed:      "ErrorMemoryMapFailed",
	ErrorLayerNotPresent:      "ErrorLayerNotPresent",
	ErrorExtensionNotPresent:  "ErrorExtensionNotPresent",
	ErrorFeatureNotPresent:    "ErrorFeatureNotPresent",
	ErrorIncompatibleDriver:   "ErrorIncompatibleDriver",
	ErrorTooManyObjects:       "ErrorTooManyObjects",
	ErrorFormatNotSupported:   "ErrorFormatNotSupported",
	ErrorSurfaceLost:          "ErrorSurfaceLost",
	ErrorNativeWindowInUse:    "ErrorNativeWindowInUse",
	Suboptimal:                "Suboptimal",
	ErrorOutOfDate:            "ErrorOutOfDate",
	ErrorValidationFailed:     "ErrorValidationFailed",
}

// String returns the symbolic name of the code
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "Result(" + strconv.Itoa(int(r)) + ")"
}

// Error lets a Result travel as an error value
func (r Result) Error() string {
	return "native result " + r.String()
}

// IsError reports whether the code is a failure code
func (r Result) IsError() bool {
	return r < 0
}
