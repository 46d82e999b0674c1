// Package domain holds the user and audit entities shared by the services,
// stores and HTTP handlers. Values are validated on construction and
// modified through copy-returning methods.
package domain
