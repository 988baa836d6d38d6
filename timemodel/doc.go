// Package timemodel implements the Time Topology component (spec §4.10):
// a closed TimeModel union (Finite/Cyclic/Infinite) derived purely from
// the patch's single TimeRoot block, plus resolution of the canonical
// reserved bus bindings (phaseA, phaseB, pulse, energy, palette,
// progress) against the blocks tagged with those reserved ids.
//
// TimeModel mirrors builder/variants.go's closed-variant style: a tagged
// struct with only the fields meaningful to its own Kind populated,
// rather than an interface hierarchy, since every consumer (UI, hot-swap
// classifier, export path) switches on Kind directly.
package timemodel
