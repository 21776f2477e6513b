package cli

import (
	"errors"

	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/engine/buffer"
)

// Exit codes for nescassist.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitExpectationsFailed indicates a replay ran but an expectation did
	// not hold.
	ExitExpectationsFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates any other failure.
	ExitInternalError = 70
)

// ErrExpectationsFailed signals that a replay finished with mismatches.
var ErrExpectationsFailed = errors.New("expectations failed")

// ErrInvalidArgument is returned for malformed positional arguments.
var ErrInvalidArgument = errors.New("invalid argument")

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var pe *config.ParseError
	var ve *config.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrExpectationsFailed):
		return ExitExpectationsFailed
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, buffer.ErrOffsetOutOfRange), errors.Is(err, buffer.ErrRangeInvalid):
		return ExitInvalidUsage
	case errors.As(err, &pe), errors.As(err, &ve),
		errors.Is(err, config.ErrFileNotFound), errors.Is(err, config.ErrUnsupportedFormat):
		return ExitConfigError
	}
	return ExitInternalError
}
