//go:build nothreads

package exec

const threadingAvailable = false
