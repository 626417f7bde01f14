package eventstream

import "errors"

// ErrNilProgressEvent indicates a nil progress event payload was provided to a publisher.
var ErrNilProgressEvent = errors.New("nil progress event")
