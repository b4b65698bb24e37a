// Package store persists the conversation log.
//
// The log is the sole persisted entity in the gateway: an append-only,
// strictly ordered table of (id, text, sender). Ids are assigned by SQLite
// AUTOINCREMENT, so insertion order, id order, and read order are the same
// thing. Nothing updates or deletes an entry once it lands.
package store
