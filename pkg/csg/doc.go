// Package csg defines the constructive solid geometry tree for Forma.
// A tree is an immutable binary structure whose leaves are placed
// primitives and whose interior nodes are boolean combinations. Builders
// construct trees; the geometry kernel only reads them during evaluation.
package csg
