// Package envsource provides pluggable sources of environment variables for
// the container entrypoint.
//
// The process environment is always the first source; additional sources let
// the platform deliver secrets out of band. Sources are specified using URI
// format:
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported URI schemes:
//
//   - process:// — the live process environment
//   - file:///etc/bot/.env — a dotenv-format file
//   - vault://vault.example.com:8200/secret/apex-bots — a Vault KV v2 secret
//   - s3://bucket/bots/.env?region=eu-west-1 — a dotenv-format object on S3
//     or a compatible store
//
// # Merge semantics
//
// A MultiSource merges sources in order with first-wins precedence: a
// variable provided by an earlier source is never overwritten by a later
// one. Since the process environment is listed first, platform-injected
// variables always beat values from files or remote stores. A source that
// fails to fetch is logged and skipped; failures here are never fatal to the
// entrypoint.
//
// Variable values are never logged, at any level.
package envsource
