// Package represent implements a small expression language which can be
// evaluated with several numeric representations.
//
// An expression is lexed and parsed into a flat token stream, which is then
// resolved: literals, names, and constant vectors fold into an indexed
// storage, and the program refers to them by slot. Evaluation converts the
// program to RPN and runs it on a value stack. The same context can be
// evaluated with the arbitrary-precision Decimal backing or with the Float64
// and Float32 machine backings, so the difference between the results shows
// how much precision the machine floats lose.
//
// Values are scalars, four-component vectors, quaternions, 4×4 matrices,
// strings, functions, and arrays of any one of those. "[1,2,3,4] * 2" is a
// vector, "q[1,0,0,0]" is a quaternion, and "{1, 2, 3}" is an array. Names
// are bound with Define or the SetVar option before evaluating.
package represent
