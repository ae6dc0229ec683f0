package cliutil

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// WithSpinner runs fn while animating an indeterminate spinner on stderr.
// The spinner is cosmetic: fn's error is returned unchanged.
func WithSpinner(description string, fn func() error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn()
	close(done)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	return err
}
