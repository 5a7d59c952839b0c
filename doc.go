// Package softovault provides a client for the SoftoVault secret store
// featuring structured logging, an in-memory read cache, and bounded retries
// with exponential backoff.
//
// The client speaks the service's REST API over HTTPS:
//   - GET {base}/key/{key} for a single secret (Get, GetString, Exists)
//   - GET {base}/all for every secret (GetAll)
//   - GET {base}/info for service metadata (VaultInfo)
//
// GetMany fans out one Get per key and joins the results.
//
// # Configuration
//
// Settings are resolved once at construction. Explicit options win over the
// environment (SOFTOVAULT_TOKEN, then SOFTOVAULT_API_KEY for the token;
// SOFTOVAULT_URL for the base URL), which wins over the package defaults.
// Construction fails with ErrMissingToken when no token can be found.
//
// # Retries and timeouts
//
// Every attempt has its own timeout. Timeouts, transport failures, 429 and
// 5xx responses are retried up to the configured count, waiting 1s, 2s, 4s,
// ... between attempts. Other 4xx responses fail immediately. Replace the
// policy with WithRetryer.
//
// # Caching
//
// Get and GetAll results are cached for the configured TTL, keyed
// independently ("secret:<key>" and "secrets:all"). Pass SkipCache to bypass
// the cache for a single call; ClearCache drops everything.
//
// Security considerations
//
//   - The package never logs secret values or the token; only keys and
//     request metadata
//   - Error messages carry the HTTP status and the service's message, never
//     request headers
//
// # Thread safety
//
// All exported client methods are safe for concurrent use by multiple goroutines.
package softovault
