// Package session provides in-memory session management for Shadok and Gibby.
//
// Each session owns an independent game engine. Sessions are identified by
// 4-character hex IDs generated from crypto/rand; lookups ignore case.
//
// The manager is safe for concurrent use. Engines themselves are not: the
// service layer serializes calls into them.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop sessions nobody touched for an hour
//	manager.CleanupExpired(time.Hour)
package session
