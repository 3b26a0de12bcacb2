// Package specialization is the catalog of the seventeen advanced specializations.
//
// Every key carries fixed metadata (parent archetype and path type) and the
// rules document must agree with it. A specialization has a non-empty ladder of
// tiers numbered 1..n, each granting at least one ability; ability ids are unique
// across the whole catalog so FindAbility can resolve them without an owner.
//
// Indices: by id, by archetype (all four archetypes present, possibly empty),
// and the "heretical", "coherent" and "special-resource" filters.
package specialization
