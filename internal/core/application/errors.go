package application

import (
	"errors"
	"fmt"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

var (
	// ErrUnsupportedDBType is returned when configuring the application layer
	// with an unknown storage type.
	ErrUnsupportedDBType = errors.New("unsupported db type")
	// ErrMissingTokenAccount is returned by operations spending funds of an
	// identity that has no token account for the involved mint.
	ErrMissingTokenAccount = fmt.Errorf(
		"%w: source token account not found", domain.ErrPreconditionFailed,
	)
)
