// Package metro is the in-memory graph engine behind the transit map.
//
// A Map owns three things: the stations (vertices) with their symmetric,
// weighted neighbor maps, the line registry, and the "current path" produced
// by the most recent successful shortest-path search. Everything else in the
// package is derived from those on demand:
//
//   - the lines connecting two adjacent stations are the intersection of the
//     two stations' line memberships, recomputed on every query;
//   - colors and display names are looked up in the registry, silently
//     skipping ids that were never registered;
//   - the itinerary splits the current path into legs wherever the set of
//     connecting line names changes.
//
// # Concurrency
//
// A Map performs no locking. All calls, reads included, must be serialized
// by the owner. The mapservice package provides a mutex-guarded owner for
// concurrent hosts.
package metro
