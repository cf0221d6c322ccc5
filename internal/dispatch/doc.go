package dispatch

// Package dispatch routes classified gesture outcomes to the feed store and
// to the external persistence collaborators. The feed advances synchronously;
// persistence runs in the background and its failures are logged, not retried.
