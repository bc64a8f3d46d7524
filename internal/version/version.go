// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Desktop window viewer, PNG snapshots, SQLite and CSV catalogs
// 0.2.0 - Projection profiles (cycle, toggle, fisheye), redraw scheduler, zoom bounds
// 0.1.0 - Initial release: braille star field, drag/zoom input, Neo4j catalog
