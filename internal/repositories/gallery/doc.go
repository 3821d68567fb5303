// Package gallery provides the persistence and integrity layer of the photo
// gallery.
//
// # Overview
//
// DataAccess is the capability contract used by every front-end. Two
// implementations satisfy it identically:
//
//   - SQLRepository:    durable store over database/sql (SQLite or PostgreSQL)
//   - MemoryRepository: in-process store seeded with fixture data on Open
//
// # Invariants
//
// Before every mutation the active backend re-derives, by reading, that no
// album references a missing owner, that (owner, album name) and (album,
// picture name) pairs are unique, and that no tag references a missing picture
// or user. Deleting a user, album or picture removes every descendant album,
// picture and tag, child-first.
//
// # Errors
//
// Every failure matches exactly one of common.ErrorNotFound,
// common.ErrorAlreadyExists or common.ErrorStorage. Operations on a closed
// backend fail with a storage error wrapping common.ErrorNotOpen.
//
// # Concurrency
//
// Backends are synchronous and perform no internal locking. Hosts that call a
// backend from several goroutines must serialise the calls themselves.
//
// Typical Usage
//
//	repo := gallery.NewSQLiteRepository("gallery.db", logger)
//	if err := repo.Open(ctx); err != nil { ... }
//	defer repo.Close()
//	u, _ := repo.CreateUser(ctx, "alice")
//	_, _ = repo.CreateAlbum(ctx, models.NewAlbum(u.ID, "summer"))
//	album, _ := repo.OpenAlbum(ctx, "summer")
package gallery
