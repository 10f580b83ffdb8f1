// Package seq provides concrete collections whose own checked access encodes
// domain knowledge the generic fallbacks cannot infer: multi-coordinate
// addressing (Matrix), a non-zero start index (OneBased), and non-integral
// keys (Sparse). Each type defines its own failure values; a dispatcher
// forwarding to them must propagate those failures unmodified.
package seq
