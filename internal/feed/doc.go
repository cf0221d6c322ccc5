package feed

// Package feed holds the ordered discovery queue. Position 0 is the top card;
// the sequence is only ever changed by bulk replacement or removal, and every
// successful mutation is announced on an explicit events bus.
