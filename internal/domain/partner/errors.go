package partner

import "errors"

var ErrMissingName = errors.New("partner name is required")
