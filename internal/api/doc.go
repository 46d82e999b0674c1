// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the health, user and auth services;
// route registration lives with the server binary.
package api
