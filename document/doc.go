// Package document reads and writes lookup tables and registries as JSON.
//
// A table document is an object with three keys:
//
//	{
//	  "policies": [{"lower": 0, "upper": 1}, ...],
//	  "axes":     [[0, 1, 2], [10, 20], ...],
//	  "data":     [[1, 2], [3, 4], [5, 6]]
//	}
//
// "policies" holds one extrapolation policy per axis (0 is Constant, 1 is
// Linear; names are accepted when reading), "axes" holds the strictly
// increasing samples of each axis and "data" holds the grid as arrays nested
// once per dimension, outermost axis first.
//
// A registry document is an array of entries ordered by dimension count and
// then by name:
//
//	[{"name": "table2d", "dims": 2, "table": {...}}, ...]
package document
