// Package cli provides the interactive papergrader command-line client.
//
// It wires configuration, local session storage, the grading API client, and
// an interactive REPL with a teacher workspace (build tests, add model
// answers) and a student workspace (submit answers for grading). Navigation
// between the views is gated by the route guard: commands a role may not use
// send the user back to the login view, exactly like the unauthenticated
// entry point of the web client.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
