package store

import (
	"log/slog"

	"github.com/google/go-cmp/cmp"
)

// Diff returns a human-readable diff between two state snapshots, or "" when
// they are equal.
func Diff[S any](before, after S, opts ...cmp.Option) string {
	return cmp.Diff(before, after, opts...)
}

// PrintChanges returns an observer that logs every processed action together
// with the resulting state diff at debug level.
func PrintChanges[S any, A any](logger *slog.Logger, opts ...cmp.Option) func(Change[S, A]) {
	return func(c Change[S, A]) {
		diff := Diff(c.Before, c.After, opts...)
		if diff == "" {
			logger.Debug("received action", "seq", c.Seq, "action", NameOf(c.Action), "changed", false)
			return
		}
		logger.Debug("received action", "seq", c.Seq, "action", NameOf(c.Action), "changed", true, "diff", diff)
	}
}
