/*
Package snapshot holds the state a target framework's dependency tree is built from.

A Snapshot is immutable. Updates go through a pair of builders:

  - WorldBuilder maps every known dependency Id to its Dependency, visible or not.
  - TopLevelBuilder is the set of dependencies shown at the root of the tree.

Filters mutate the builders in place while a single update is in flight; the
pipeline then freezes them into a new Snapshot. Builders are not safe for
concurrent use: an update owns its builders exclusively.
*/
package snapshot
