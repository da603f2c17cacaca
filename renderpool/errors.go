package renderpool

import "errors"

var (
	// ErrWorkerInit means a worker could not load its model.
	ErrWorkerInit = errors.New("renderpool: worker initialisation failed")

	// ErrNotDispatched marks units that were never handed to a worker.
	ErrNotDispatched = errors.New("renderpool: unit not dispatched")

	// ErrWriteImage covers failures writing a rendered image to disk.
	ErrWriteImage = errors.New("renderpool: failed to write image")

	// ErrInvalidConfig is returned by New for an unusable Config.
	ErrInvalidConfig = errors.New("renderpool: invalid configuration")
)
