package celcheck

import "errors"

var (
	ErrCompile    = errors.New("celcheck: expression does not compile")
	ErrNotBoolean = errors.New("celcheck: expression must evaluate to bool")
	ErrEvaluation = errors.New("celcheck: evaluation failed")
)
