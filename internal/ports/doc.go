// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Codec]: Converts one transport file into a dataset
//   - [ProgressSink]: Receives per-item progress notifications
//   - [Packager]: Bundles successful outputs for delivery
//   - [ReportWriter]: Persists a machine-readable batch summary
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement these interfaces
// with concrete implementations (file system, subprocess, zerolog, etc.).
//
// This separation enables:
//   - Testing application logic with mock implementations
//   - Swapping conversion backends without changing the batch driver
//   - Clear boundaries and dependency direction
package ports
