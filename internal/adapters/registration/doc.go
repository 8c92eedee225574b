// Package registration provides the adapters that perform the external
// registration action for one item: a subprocess (Exec) and an in-process
// function (Func). Both report success as a nil error and nothing else
package registration
