package engine

import (
	"errors"
	"fmt"
)

var (
	errTimeQuantumRange = fmt.Errorf("time quantum must be between %d and %d ms", MinTimeQuantumMs, MaxTimeQuantumMs)
	errAgingFactorRange = fmt.Errorf("aging factor must be between %d and %d seconds", MinAgingSec, MaxAgingSec)

	// ErrUnknownPID signals a control operation addressed to a pid absent
	// from the process table.
	ErrUnknownPID = errors.New("unknown pid")
	// ErrIneligibleState signals a control operation that the addressed
	// process's current state does not permit.
	ErrIneligibleState = errors.New("ineligible process state")
)
