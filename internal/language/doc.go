// Package language classifies subtitle folder and track names by language.
//
// The library layout encodes languages as folder names ("persian", "english")
// or short codes; this package maps all recognized forms to ISO 639-1 and
// provides display names and text-direction hints for report rendering.
package language
