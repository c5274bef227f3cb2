/*
Package session serializes snapshot updates.

Each project and target framework pair owns one snapshot, and at most one update
may be in flight for it at a time. The Manager hands out a per-key mutex (reference
counted, dropped when idle), optionally backed by a ports.DistributedLocker when
several processes share the same store, and runs load-modify-save under it.
*/
package session
