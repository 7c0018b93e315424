package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Analysis completed, no weak clusters (or not enforced)
	ExitWeakCluster = 1 // Analysis completed but weak clusters were found
	ExitError       = 2 // Configuration or runtime error
)

// WeakClusterError indicates that the analysis ran successfully but one or
// more clusters fell below the weak threshold while --fail-on-weak was set.
type WeakClusterError struct {
	Message string
}

func (e *WeakClusterError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var weakErr *WeakClusterError
		if errors.As(err, &weakErr) {
			os.Exit(ExitWeakCluster)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
