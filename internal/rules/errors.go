package rules

import "errors"

// ErrInvalidConfiguration marks a rule combination that no layout can satisfy.
var ErrInvalidConfiguration = errors.New("invalid rule configuration")
