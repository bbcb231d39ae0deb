//go:build !nothreads

package exec

// threadingAvailable reports whether asynchronous execution is compiled in.
const threadingAvailable = true
