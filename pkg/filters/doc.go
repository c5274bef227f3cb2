/*
Package filters implements the snapshot filter chain.

A Filter intercepts every dependency about to be added to or removed from a
snapshot. It may return a replacement for the incoming dependency and may rewrite
other entries of the world and top-level builders, so that invariants spanning
several nodes hold after the update:

  - DuplicatedDependencies gives colliding captions their disambiguating alias.
  - SdkAndPackages links an SDK node with the package node that backs it.

Filters keep no state between calls; everything they need is passed in. They run
synchronously and never block.
*/
package filters
