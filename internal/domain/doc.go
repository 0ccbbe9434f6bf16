// Package domain holds the types shared by the delivery queue, the sentiment analyzers and
// the survey service, plus the small interfaces they meet at (QueueStore, Sender, Analyzer).
// It has no dependencies on adapters.
package domain
