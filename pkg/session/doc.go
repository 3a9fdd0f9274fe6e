// Package session keeps server-side session state: named parameter groups and
// a CSRF token bound to a storage backend, with a start / commit / destroy
// lifecycle and periodic rotation of the session identifier.
//
// # Architecture
//
// A Session is the per-request state. It talks to a Backend, which holds the
// raw key/value buffer of the open session and persists it. Engine is the
// Backend shipped with the package; it keeps the buffer in memory while the
// session is open and saves Records to a Store. A Manager wires both together
// for HTTP handlers and carries the identifier through a Transport.
//
//	┌────────┐    id     ┌────────────┐
//	│ Client │ ◄───────► │  Transport │
//	└────────┘           └────────────┘
//	                           │
//	                           ▼
//	┌─────────────────────────────────┐
//	│             Manager             │
//	└─────────────────────────────────┘
//	       │ per request
//	       ▼
//	┌──────────┐  buffer  ┌──────────┐  Record  ┌───────┐
//	│ Session  │ ───────► │  Engine  │ ───────► │ Store │
//	└──────────┘          └──────────┘          └───────┘
//
// Stores: MemoryStore, CachedStore (LRU in front of another store) and the
// redisstore, pgstore and mongostore subpackages.
//
// # Lifecycle
//
// Start opens the backend session, rotates the identifier when its expiry
// marker is out of range and loads every stored mapping as a parameter group.
// Commit writes back the non-empty groups, the expiry marker and the CSRF
// token, then closes the backend. Destroy clears everything and
// erases the stored session. Commit and Destroy do nothing when the backend
// currently holds a session under another name.
//
// Configuration setters return ErrAlreadyStarted while the session is started.
// Backend options may not hand transport to the backend: use_cookies and
// use_trans_sid must be false and use_only_cookies must be true.
//
// # Usage
//
//	cookies, err := cookie.NewFromConfig(cookieCfg)
//	if err != nil {
//		return err
//	}
//
//	mgr, err := session.NewFromConfig(cfg,
//		session.WithStore(redisstore.New(client)),
//		session.WithCookieManager(cookies),
//	)
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	r := chi.NewRouter()
//	r.Use(mgr.Middleware, session.CSRFMiddleware)
//	r.Post("/cart", func(w http.ResponseWriter, r *http.Request) {
//		sess := session.MustFromContext(r.Context())
//		sess.Get("cart").Set("item", r.FormValue("item"))
//	})
//
// Handlers log out with Manager.Destroy, which also clears the identifier on
// the client.
//
// # Rotation
//
// With a positive identifier expiration interval every started session
// carries the reserved "@id_expiration_interval" marker, a unix timestamp. A
// marker in the past, or further in the future than one interval, triggers
// RegenerateID on Start. The CSRF token is stored under "@csrf".
//
// # Errors
//
// All errors are sentinel values comparable with errors.Is: ErrAlreadyStarted,
// ErrNotStarted, ErrBackendDisabled, ErrAlreadyActive, ErrInvalidConfiguration
// and ErrBackendFailure for store failures.
package session
