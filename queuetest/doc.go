// Package queuetest provides recording test doubles for [queue.Queue] and
// [mutex.Mutex], allowing code that dispatches work to be tested
// deterministically, without real concurrency.
package queuetest
