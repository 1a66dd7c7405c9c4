package codegen

import (
	"fmt"

	"github.com/pontaoski/s3c/types"
	"github.com/ztrue/tracerr"
)

// Error is an internal failure of code generation. Unlike diagnostics it
// means the tree cannot be lowered at all.
type Error struct {
	Msg string
}

func (e Error) Error() string {
	return e.Msg
}

func newError(msg string, args ...interface{}) Error {
	return Error{Msg: fmt.Sprintf(msg, args...)}
}

// recoverError turns a code generation panic into an error. It must be
// deferred directly.
func recoverError(err *error) {
	v := recover()
	if v == nil {
		return
	}

	switch e := v.(type) {
	case Error:
		*err = tracerr.Wrap(e)
	case types.UnsupportedTypeError:
		*err = tracerr.Wrap(newError("code generation: %s", e))
	default:
		panic(v)
	}
}
