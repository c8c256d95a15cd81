// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ReportStore: Report and photo persistence (SQLite or in-memory)
//   - ConfigStore: Application configuration (TOML file)
//   - PhotoSource: Finds, reads and watches image files on disk
//   - ImageProcessor: Inspects and compresses images
//   - ReportRenderer: Draws a laid-out report as a PDF
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
