// Package attribution infers which part of calling code issued a captured
// log call.
//
// Two strategies exist and exactly one is selected per deployment:
//
//   - ArgumentResolver (default): deterministic parsing of the call
//     arguments, using the single-argument "user" convention and the
//     bracketed "[name:...]" tag in the third token of the first argument.
//   - StackResolver: a runtime stack walk outward past this module's own
//     frames to the first caller frame. More general, but sensitive to what
//     the compiler keeps on the stack; its contract is pinned by a
//     regression test that exercises the full wrapper call path.
//
// Mixing strategies in one deployment is not supported; there is no merge
// rule between their outputs.
package attribution
