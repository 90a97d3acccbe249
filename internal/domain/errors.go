package domain

import "errors"

// ErrCorruptRecord indicates that a durable record could not be decoded.
// Adapters wrap it with the record name; engines recover by falling back
// to the record's default state.
var ErrCorruptRecord = errors.New("corrupt record")
