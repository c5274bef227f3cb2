/*
Package ports defines the driven ports (interfaces) of the snapshot engine.

These interfaces decouple the update orchestration from concrete backends.

# Key Interfaces

  - SnapshotStore: keeps the current snapshot of each project and target framework.
  - DistributedLocker: serializes updates to the same snapshot across processes.
  - Engine: the driving port the transport adapters serve.
*/
package ports
