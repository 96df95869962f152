package templater

import (
	"errors"
)

var (
	errEmptyTemplate = errors.New("template is not set")
)
