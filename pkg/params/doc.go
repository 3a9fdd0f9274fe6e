// Package params provides the ordered key/value container used for session
// parameter groups.
//
// A group is created empty, populated either one key at a time with Set or
// wholesale with SetData, and reports its size through Count so that callers
// can skip persisting empty groups:
//
//	profile := params.New(map[string]any{"lang": "en"})
//	profile.Set("theme", "dark")
//
//	lang, _ := profile.GetString("lang")
//	if profile.Count() > 0 {
//		persist(profile.Data())
//	}
//
// Params is not safe for concurrent use; it is owned by a single session.
package params
