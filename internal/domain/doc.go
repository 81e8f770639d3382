// Package domain contains the core domain entities and value objects for sasport.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [InputItem]: One XPORT transport file to convert, resolved from a
//     directory or an upload
//   - [ConversionResult]: The per-item outcome of a conversion attempt
//   - [BatchReport]: The ordered success/failure partition of one batch run
//   - [OutputArtifact]: A named byte blob ready for delivery
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
