// Package hittest converts canvas pixel positions into grid coordinates.
//
// It answers three questions for a [grid.Row] slice laid out from a canvas
// origin: which cell is under a point ([Locate], [IsInsideOfCol]), which
// column a moving edge has reached when walked from a known column
// ([FindStartCol]), and how many pixels separate two columns of the same row
// ([DistanceFromCol]).
//
// All functions are pure and never modify the rows they are given.
package hittest
