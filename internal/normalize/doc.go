// Package normalize turns loosely-typed client input into the clean values stored in the
// database: tag and spec lists, slugs, and scalars that clients send as either JSON
// strings or JSON literals.
package normalize
