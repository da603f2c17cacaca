// Package renderpool renders work units on a fixed set of model-owning
// workers and collects one Outcome per unit.
//
// Each worker is a goroutine locked to its OS thread. It calls the
// sdruntime.Loader once with its own DeviceConfig, keeps the model for its
// lifetime and pulls unit indices from a shared queue, so models are never
// shared between workers.
//
// A unit that fails is recorded in its Outcome and does not stop the others.
// RenderAll itself fails only when the context is cancelled or when failed
// model loads left units without a worker; in both cases the units that never
// started carry ErrNotDispatched. A worker that cannot load its model returns
// the error to the group and the remaining workers take over its share.
package renderpool
