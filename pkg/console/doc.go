// Package console defines the host logging surface that logtap intercepts.
//
// A host exposes four fixed channels (log, info, warn, error) behind the
// Console interface. The interception layer receives a Console at
// construction and hands back a wrapped one; the embedding application is
// responsible for routing its logging calls through the wrapped value. This
// keeps interception an explicit dependency-injection step rather than a
// mutation of global state.
//
// Dispatch and FromFuncs convert between the interface form and an explicit
// channel-to-handler table, which is the only dispatch mechanism used
// anywhere in the module.
package console
