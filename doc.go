// Package yoga is the booking backend of a yoga studio: accounts, teachers,
// sessions and the participation of users in sessions, served as a JSON API.
//
// Authentication:
//   - Auther verifies credentials against a PrincipalStore and issues HS512
//     bearer tokens through TokenService. Unknown users and wrong passwords
//     fail the same way.
//   - UserProvider turns a bearer token back into the acting User. The
//     ProtectedRoute middleware runs it for every route group except auth
//     and puts the User and the token claims in the request context.
//
// Participation:
//   - ParticipationStateMachine adds and removes users from a session. Each
//     change reloads the session, checks the guard, and saves with an
//     optimistic version check. Conflicting writes are retried up to
//     MaxParticipationRetries times.
//
// Activity sinks:
//   - ActivitySink receives login, registration, deletion and participation
//     events. Sinks run best-effort (errors are logged) so you can forward to a
//     database or queue without blocking requests.
package yoga
