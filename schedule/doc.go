// Package schedule implements Descriptor, a declarative, comparable
// description of where and when work should run, which may be fired any
// number of times.
//
// Descriptors allow the execution strategy of a component to be chosen by
// its caller, e.g. a component may accept a Descriptor for its callbacks,
// which tests set to [Absent] (run inline), and production code sets to
// [Async] of the main queue.
package schedule
