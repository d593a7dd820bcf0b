package scope

import "errors"

var (
	ErrAccessDenied = errors.New("access denied for this tenant")
)
