package common

import "errors"

// Error taxonomy for the orchestrator and report surfaces.
var (
	// ErrNotRunning is returned by orchestrator control calls made before Start
	ErrNotRunning = errors.New("orchestrator not running")

	// ErrInvalidArgument is returned for out-of-range control parameters and
	// malformed query fields
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataUnavailable indicates the corpus store is empty or unreadable;
	// reports degrade to zero-count shapes rather than failing hard
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrUpstreamFailure indicates a single scrape/source failure, isolated
	// per source and never aborting the batch
	ErrUpstreamFailure = errors.New("upstream failure")
)
