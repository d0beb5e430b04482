// Package cli provides the interactive bereal command-line client.
//
// It wires configuration, the local database, the backend gateway, the
// services and a read–eval–print loop. The REPL goroutine plays the role of
// the UI thread: it owns the rendered feed rows and the current user, and
// background work (photo downloads, reminder delivery) reaches it only
// through the UI queue, drained before every prompt.
//
// Commands:
//   - register / login / logout
//   - feed (f), refresh: show the feed when the user posted within 24h
//   - comments <n>, comment <n>: read or add comments on row n
//   - post: pick a photo and caption and share it
//   - mine: the user's own posts
//   - image <n>: save row n's photo under <data_dir>/download
//   - tap: open the latest delivered reminder
//   - notifications [on|off]: show or change reminder permission
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
