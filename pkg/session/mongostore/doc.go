// Package mongostore implements session.Store on MongoDB using the v2 driver.
//
// One document per session, keyed by the session identifier. A TTL index on
// expires_at lets the server drop expired sessions; DeleteExpired removes
// them immediately for callers that cannot wait for the TTL monitor.
package mongostore
