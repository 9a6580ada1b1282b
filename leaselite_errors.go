package leaselite

import "errors"

var (
	ErrClientClosed     = errors.New("client closed")
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrHandlerNotFound  = errors.New("handler not found")
	ErrWorkflowPanicked = errors.New("workflow panicked")
	ErrNilHandler       = errors.New("nil handler")
	ErrDuplicateHandler = errors.New("handler already registered")
	ErrEmptyHandlerName = errors.New("empty handler name")
)
