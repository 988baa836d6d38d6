// Package typesystem describes the three value worlds a patch graph can
// carry values through — scalar, signal, field, event — and the semantic
// domains and categories layered on top of them.
//
// A value's type is a TypeDesc(world, domain, category, busEligible). World
// is the structural kind (compile-time constant, time-varying, per-element,
// discrete-pulse); domain is the semantic content (float, phase, color, ...);
// category is a one-way relaxation (core is assignable to internal of the
// same world/domain; the reverse needs an adapter).
//
// TypeDesc is a small comparable value struct, usable directly as a map key,
// the same way core.Edge is a plain struct passed by value rather than
// wrapped in an interface.
package typesystem
