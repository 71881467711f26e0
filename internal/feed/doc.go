// Package feed loads a static transit network description and applies it
// to a map through the map's mutation API only, so the engine's invariants
// hold no matter which format the data came from.
//
// Two encodings are understood:
//
//   - HCL (.hcl): line, station, edge and route blocks, evaluated with a
//     small set of cty standard-library functions (upper, lower, format,
//     concat, join);
//   - YAML (.yaml, .yml) and JSON (.json): the same records as top-level
//     lists.
//
// Records are validated before anything is applied. Application order is
// lines, stations, edges, then routes.
package feed
