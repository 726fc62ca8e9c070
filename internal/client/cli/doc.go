// Package cli provides the interactive prepadmin console.
//
// It wires configuration, the token store, the HTTP gateway, the session
// manager and the router into a REPL that mirrors the admin SPA: every
// screen has a path, protected screens go through the route guard, and a
// rejected session sends the operator back to /login.
//
// Key features:
//   - Login / Logout with an admin-only identity check
//   - Templates and lessons: list, show, create, edit, delete
//   - Interviews and users: list and show
//   - Cover image upload through the backend or straight to S3
//
// The REPL is started via App.Run(ctx), which blocks until the operator
// exits. See App and runREPL for details.
package cli
