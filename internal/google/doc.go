// Package google provides shared OAuth2 authentication for the Google
// Calendar APIs used by meetslot.
//
// Tokens are stored per account under the user cache directory
// (~/.cache/meetslot/). The "default" account covers single-account usage;
// named accounts allow searching from different Google identities.
//
// The package exposes a TokenProvider interface so transports other than the
// local file store can supply tokens.
package google
