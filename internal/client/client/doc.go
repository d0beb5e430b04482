// Package client contains the client-side building blocks that reach outside
// the process: the backend gateway and the local database bootstrap.
//
// # Overview
//
//  1. A transport-agnostic gateway contract (see the Client interface):
//     SignUp/LogIn/LogOut/Me, UploadFile, CreatePost/QueryPosts,
//     CreateComment/QueryComments, UpdateUser, Ping.
//  2. A concrete Parse REST implementation (see ParseClient) that injects the
//     application credentials and the session token as headers, encodes
//     pointers, files and dates in Parse's JSON types, and maps failures to
//     the error taxonomy of package common.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     NewRepositories) wiring an SQLite database with embedded goose
//     migrations.
//
// # Error Handling
//
// Transport failures and 5xx answers match common.ErrNetwork. Answers with a
// Parse error body or another 4xx status are returned as
// *common.BackendError, which matches common.ErrBackend and, for invalid
// sessions, common.ErrUnauthorized.
//
// Concurrency & Contexts
//
// ParseClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package client
