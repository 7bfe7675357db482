// Package actionservice records player-to-element events inside the
// engagement context.
//
// Layering:
// - domain: action entity, composite key, validation predicates, the
//   points rule, errors
// - application: role guard -> validation -> referential resolution ->
//   atomic batch commit -> point accrual; the outbox relay worker
// - ports: persistence boundary plus the actor directory, element
//   directory and player-score projections, event publishing
// - adapters: memory and postgres stores, HTTP handler adapter
// - transport: module-private boundary DTOs
//
// Boundary notes:
// - Actions are immutable once committed; there is no update path.
// - Referenced elements and players are held by key only and resolved
//   through ports at commit time; the catalog and identity contexts
//   are wired in at the composition root, never imported here.
// - The SQL adapter stages one committed-action event per imported
//   row in the same transaction; a worker relays them to the bus.
package actionservice
