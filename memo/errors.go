package memo

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrKeyConstruction is matched by every KeyConstructionError.
var ErrKeyConstruction = errors.New("memo: cannot build cache key")

// KeyConstructionError reports an argument that can be neither compared nor
// stringified. The wrapped function is not called when it is returned.
type KeyConstructionError struct {
	// Position is the index of the offending positional argument, or -1
	// when the argument was passed by name.
	Position int
	// Name is set for named arguments.
	Name string
	Type reflect.Type
}

func (e *KeyConstructionError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%v: named argument %q of type %v is neither comparable nor a fmt.Stringer",
			ErrKeyConstruction, e.Name, e.Type)
	}
	return fmt.Sprintf("%v: positional argument %d of type %v is neither comparable nor a fmt.Stringer",
		ErrKeyConstruction, e.Position, e.Type)
}

func (e *KeyConstructionError) Is(target error) bool {
	return target == ErrKeyConstruction
}
