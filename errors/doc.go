// Package errors provides structured error types for the virtualgallery
// library.
//
// Errors are categorized by Stage (where in the engine lifecycle the error
// occurred) and Kind (error category). The Error type includes the backend
// identifier, the operation that failed, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.StageInit, errors.KindInitialization).
//		Backend("babylon").
//		Op("Initialize").
//		Detail("renderer construction failed").
//		Cause(cause).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Initialization("babylon", cause)
//	err := errors.UnknownBackend("unity")
//	err := errors.NotImplemented("three", "Initialize")
//
// All errors implement the standard error interface and support
// errors.Is/As. Is matches on Stage and Kind, so a caller can test for a
// category without caring which backend produced it:
//
//	if errors.Is(err, &errors.Error{Stage: errors.StageFactory, Kind: errors.KindUnknownBackend}) {
//	    ...
//	}
package errors
