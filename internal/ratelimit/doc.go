// Package ratelimit implements fixed-window request limits keyed by client identifier.
//
// A window opens with the first request from an identifier and lasts for the configured
// duration. Requests inside the window are counted; once the count reaches the limit,
// later requests are denied until the window elapses. Stores implement Echo's
// middleware.RateLimiterStore so they plug into middleware.RateLimiterWithConfig.
package ratelimit
