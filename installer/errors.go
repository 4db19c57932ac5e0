package installer

import "errors"

var (
	ErrInvalidBool  = errors.New("could not be parsed to a boolean value (use 'true'/'false')")
	ErrBadSentinels = errors.New("mismatched loader sentinels")
	ErrStageFailed  = errors.New("install stage failed")
	ErrMissingTool  = errors.New("required tool not found in PATH")
)
