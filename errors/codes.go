package errors

import "strconv"

// ErrorCode is the application-level code carried in every error response
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 200
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1003

	ErrorCode_UNAUTHENTICATED    ErrorCode = 2000
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001

	ErrorCode_MEETING_NOT_FOUND        ErrorCode = 3000
	ErrorCode_MEETING_SOURCE_NOT_FOUND ErrorCode = 3001
	ErrorCode_MEETING_PRECONDITION     ErrorCode = 3002
	ErrorCode_MEETING_MALFORMED_UPLOAD ErrorCode = 3003

	ErrorCode_ENGINE_UNAVAILABLE    ErrorCode = 4000
	ErrorCode_ENGINE_AUTHENTICATION ErrorCode = 4001

	ErrorCode_STORAGE_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "HTTP_OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_MEETING_NOT_FOUND:        "MEETING_NOT_FOUND",
	ErrorCode_MEETING_SOURCE_NOT_FOUND: "MEETING_SOURCE_NOT_FOUND",
	ErrorCode_MEETING_PRECONDITION:     "MEETING_PRECONDITION_FAILED",
	ErrorCode_MEETING_MALFORMED_UPLOAD: "MEETING_MALFORMED_UPLOAD",
	ErrorCode_ENGINE_UNAVAILABLE:       "ENGINE_UNAVAILABLE",
	ErrorCode_ENGINE_AUTHENTICATION:    "ENGINE_AUTHENTICATION",
	ErrorCode_STORAGE_FAILED:           "STORAGE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "CODE_" + strconv.Itoa(int(c))
}
