package discovery

// Package discovery wires the feed store, swipe controller, stack policy and
// outcome dispatcher behind one screen-level Session. Front ends forward
// pointer input to the session and render its transforms.
