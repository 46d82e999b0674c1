// Package auth authenticates users and issues, validates and revokes their
// access tokens.
//
// Strategies are selected by provider through a Resolver. Only the local
// email/password strategy is implemented; it signs HS256 JWTs and consults a
// RevocationStore, held in memory or shared through Redis, before accepting
// a token.
package auth
