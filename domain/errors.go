package domain

import (
	"errors"
	"fmt"
	"go/constant"
)

var errNoScope = errors.New("no constant scope to resolve named bounds")

type errNotInteger struct {
	v constant.Value
}

func (e errNotInteger) Error() string {
	return fmt.Sprintf("%s is not an integer constant", e.v.ExactString())
}
