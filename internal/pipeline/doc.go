// Package pipeline runs stress-map jobs end to end: it allocates a
// job-exclusive workspace, materializes the RGB and NIR inputs, invokes the
// external computation once, publishes the resulting map, and removes the
// workspace on every exit path. Input acquisition and output publication are
// strategies selected by job mode.
package pipeline
