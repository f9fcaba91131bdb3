package importrun

import "errors"

var ErrRunNotFound = errors.New("import run not found")
