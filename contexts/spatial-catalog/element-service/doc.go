// Package elementservice manages points of interest inside the
// spatial-catalog context.
//
// Layering:
// - domain: element entity, composite key, validation predicates, errors
// - application: role guard -> validation -> repository orchestration,
//   search composition (exact-match and location radius)
// - ports: persistence boundary plus the actor directory projection
// - adapters: memory and postgres stores, HTTP handler adapter
// - transport: module-private boundary DTOs
//
// Boundary notes:
// - The actor directory is a port; the identity-access context is wired
//   in at the composition root, never imported here.
// - Element expiry is one-way unless the deployment enables the
//   reversible policy.
package elementservice
