/*
Package domain contains the core data model of the dependency snapshot engine.

It defines the dependency node record reported by providers, the capability flags
that classify it, the target framework a snapshot is scoped to, and the Id scheme
used to cross-reference nodes between providers. This package is kept pure and free
of I/O; everything here is a value type.

# Key Entities

  - Dependency: one node of the dependency tree (package, SDK, project reference...).
  - Flags: a bitmask of capabilities (SdkSubTreeNode, PackageNode, Resolved, ...).
  - TargetFramework: scopes a snapshot; only its Moniker takes part in Ids.
  - Changes: a batch of added dependencies and removed ids applied to one snapshot.
  - LifecycleHooks: callbacks fired by the filter pipeline for observability.
*/
package domain
