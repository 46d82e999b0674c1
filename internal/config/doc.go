// Package config handles configuration loading, parsing, and validation
// from the process environment and the per-environment .env file chain.
//
// Every field is resolved in a fixed order: an explicit environment variable,
// then the overlay for the resolved deployment environment, then a hardcoded
// fallback constant. Raw input is schema-checked by Validate before the
// Builder runs, so an invalid environment never reaches a serving process.
// A built Config is a read-only snapshot shared by every component that needs
// connection parameters.
package config
