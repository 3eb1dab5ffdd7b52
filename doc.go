// Package mathexpr implements an arbitrary-precision decimal calculator for
// plain-text arithmetic.
//
// Expressions are made of decimal numbers, the operators + - * / ^, groups in
// parentheses or square brackets, the functions sin, cos, tan, abs, and sqrt,
// and the constant PI. Whitespace is ignored. "2+3*4" is 14 and "2^3^2" is
// 512; exponentiation chains associate to the right. Adjacent groups multiply,
// so "(1+1)(3)" is 6, as does a term followed by a group, so "2(3)" is 6 too.
// Constant names are case-insensitive; function names are not.
//
// Parse builds an immutable tree once. Eval reduces the tree to an
// *apd.Decimal. Addition, subtraction, multiplication, and integer powers up
// to 4096 are exact; division, the functions, and other powers are rounded to
// the precision set with Prec. The function and constant registries can be
// replaced with ParseFuncs and ParseConsts.
//
// Parsing and evaluation recurse once per level of grouping, roughly eight
// stack frames per level. Go stacks grow until the runtime's maximum (1 GB on
// 64-bit systems by default), so inputs nested more than a few hundred
// thousand levels deep crash the program. Callers that accept untrusted input
// should limit its length.
package mathexpr
