// Package userservice manages smartspace members inside the
// identity-access context.
//
// Layering:
// - domain: user entity, composite key, validation predicate, errors
// - application: role guard -> validation -> repository orchestration
// - ports: stable persistence boundary
// - adapters: memory and postgres stores, HTTP handler adapter
// - transport: module-private boundary DTOs
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Other contexts resolve users only through directory ports wired in
//   the composition root, never by importing this module.
// - Import validation rejects users whose smartspace equals the
//   deployment's own; the platform only imports federated users. This
//   is a deliberate constraint, not a defect.
package userservice
